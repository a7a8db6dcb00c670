package mysql

const insertUserSQL = `
INSERT INTO users (id, name, email, password_hash, role, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`

const getUserByEmailSQL = `
SELECT id, name, email, password_hash, role, created_at
FROM users WHERE email = ?
`

const getUserSQL = `
SELECT id, name, email, password_hash, role, created_at
FROM users WHERE id = ?
`

const insertPropertySQL = `
INSERT INTO properties
  (id, owner_id, name, city, base_rate, total_rooms, active, average_rating, total_reviews, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, 0, 0, ?)
`

const getPropertySQL = `
SELECT id, owner_id, name, city, base_rate, total_rooms, active, average_rating, total_reviews, created_at
FROM properties WHERE id = ?
`

// recomputeRatingSQL rewrites the cached aggregate from the verified review
// set in one statement, so the count and the mean always come from the same
// snapshot.
const recomputeRatingSQL = `
UPDATE properties SET
  total_reviews  = (SELECT COUNT(*) FROM reviews WHERE property_id = ? AND verified = 1),
  average_rating = (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE property_id = ? AND verified = 1)
WHERE id = ?
`

const insertBookingSQL = `
INSERT INTO bookings
  (id, customer_id, property_id, check_in, check_out, guests, nights,
   price_per_night, taxes_and_fees, total_amount, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const bookingColumns = `
  id, customer_id, property_id, check_in, check_out, guests, nights,
  price_per_night, taxes_and_fees, total_amount, status, created_at
`

const getBookingSQL = `SELECT` + bookingColumns + `FROM bookings WHERE id = ?`

const updateBookingStatusSQL = `UPDATE bookings SET status = ? WHERE id = ?`

const listBookingsByCustomerSQL = `
SELECT` + bookingColumns + `
FROM bookings WHERE customer_id = ?
ORDER BY created_at DESC, id DESC
`

const listBookingsByOwnerSQL = `
SELECT` + bookingColumns + `
FROM bookings b
WHERE b.property_id IN (SELECT id FROM properties WHERE owner_id = ?)
ORDER BY b.created_at DESC, b.id DESC
`

const insertReviewSQL = `
INSERT INTO reviews
  (id, booking_id, customer_id, property_id, rating, comment, verified,
   helpful, reported, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, 0, 0, ?, ?)
`

const reviewColumns = `
  id, booking_id, customer_id, property_id, rating, comment, verified,
  helpful, reported, created_at, updated_at
`

const getReviewSQL = `SELECT` + reviewColumns + `FROM reviews WHERE id = ?`

const getReviewByBookingSQL = `SELECT` + reviewColumns + `FROM reviews WHERE booking_id = ?`

const updateReviewSQL = `
UPDATE reviews SET rating = ?, comment = ?, updated_at = ? WHERE id = ?
`

const deleteReviewSQL = `DELETE FROM reviews WHERE id = ?`

// Single-statement increment; safe under concurrent callers.
const incrementHelpfulSQL = `UPDATE reviews SET helpful = helpful + 1 WHERE id = ?`

const markReportedSQL = `UPDATE reviews SET reported = 1 WHERE id = ?`

const listReviewsByPropertySQL = `
SELECT` + reviewColumns + `
FROM reviews WHERE property_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

const countReviewsByPropertySQL = `SELECT COUNT(*) FROM reviews WHERE property_id = ?`

const reviewedBookingsSQL = `SELECT booking_id FROM reviews WHERE customer_id = ?`

// ---- owner rollups ----

const ratingsSummarySQL = `
SELECT
  COUNT(*),
  COALESCE(AVG(r.rating), 0),
  COALESCE(SUM(CASE WHEN r.rating = 1 THEN 1 ELSE 0 END), 0),
  COALESCE(SUM(CASE WHEN r.rating = 2 THEN 1 ELSE 0 END), 0),
  COALESCE(SUM(CASE WHEN r.rating = 3 THEN 1 ELSE 0 END), 0),
  COALESCE(SUM(CASE WHEN r.rating = 4 THEN 1 ELSE 0 END), 0),
  COALESCE(SUM(CASE WHEN r.rating = 5 THEN 1 ELSE 0 END), 0)
FROM reviews r
JOIN properties p ON p.id = r.property_id
WHERE p.owner_id = ? AND r.verified = 1
`

const recentReviewsSQL = `
SELECT
  r.id,
  r.property_id,
  p.name,
  u.name,
  (SELECT COUNT(*) FROM reviews r2 WHERE r2.customer_id = r.customer_id),
  r.rating,
  r.comment,
  r.created_at
FROM reviews r
JOIN properties p ON p.id = r.property_id
JOIN users u ON u.id = r.customer_id
WHERE p.owner_id = ? AND r.verified = 1 AND r.comment <> ''
ORDER BY r.created_at DESC, r.id DESC
LIMIT ?
`

const bookingTotalsSQL = `
SELECT
  COUNT(*),
  COALESCE(SUM(b.guests), 0),
  COALESCE(SUM(b.nights), 0),
  COALESCE(SUM(CASE WHEN b.status = 'confirmed' THEN 1 ELSE 0 END), 0),
  COALESCE(SUM(CASE WHEN b.status IN ('confirmed', 'completed') THEN b.total_amount ELSE 0 END), 0)
FROM bookings b
JOIN properties p ON p.id = b.property_id
WHERE p.owner_id = ?
`

const totalRoomsSQL = `SELECT COALESCE(SUM(total_rooms), 0) FROM properties WHERE owner_id = ?`
