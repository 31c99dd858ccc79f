package sqlite

const createSchemaVersionSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version    INTEGER PRIMARY KEY,
  applied_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

const createRoomsSQL = `
CREATE TABLE IF NOT EXISTS rooms (
  room_number TEXT PRIMARY KEY,
  status      TEXT NOT NULL DEFAULT 'available'
)`

const createBillsSQL = `
CREATE TABLE IF NOT EXISTS bills (
  bill_no       TEXT PRIMARY KEY,
  guest_name    TEXT NOT NULL,
  room_number   TEXT NOT NULL,
  check_in_date TEXT NOT NULL,
  checkout_date TEXT NOT NULL,
  nights        INTEGER NOT NULL,
  rate          REAL NOT NULL,
  subtotal      REAL NOT NULL,
  cgst          REAL NOT NULL,
  sgst          REAL NOT NULL,
  total         REAL NOT NULL,
  date          TEXT NOT NULL,
  FOREIGN KEY (room_number) REFERENCES rooms(room_number)
)`

// Legacy rebuild: SQLite cannot drop columns in old versions, so the v2
// migration recreates the table and copies rows across. A legacy row has a
// single recorded date and a day count; both stay dates inherit the date,
// nights inherits days (floor 1).
const createBillsNewSQL = `
CREATE TABLE bills_new (
  bill_no       TEXT PRIMARY KEY,
  guest_name    TEXT NOT NULL,
  room_number   TEXT NOT NULL,
  check_in_date TEXT NOT NULL,
  checkout_date TEXT NOT NULL,
  nights        INTEGER NOT NULL,
  rate          REAL NOT NULL,
  subtotal      REAL NOT NULL,
  cgst          REAL NOT NULL,
  sgst          REAL NOT NULL,
  total         REAL NOT NULL,
  date          TEXT NOT NULL,
  FOREIGN KEY (room_number) REFERENCES rooms(room_number)
)`

const copyLegacyBillsSQL = `
INSERT INTO bills_new
  (bill_no, guest_name, room_number, check_in_date, checkout_date,
   nights, rate, subtotal, cgst, sgst, total, date)
SELECT
  bill_no,
  guest_name,
  room_number,
  COALESCE(date, datetime('now')),
  COALESCE(date, datetime('now')),
  MAX(COALESCE(days, 1), 1),
  rate,
  subtotal,
  cgst,
  sgst,
  total,
  COALESCE(date, datetime('now'))
FROM bills`

const seedRoomSQL = `
INSERT OR IGNORE INTO rooms (room_number, status) VALUES (?, 'available')`

const selectRoomStatusSQL = `
SELECT status FROM rooms WHERE room_number = ?`

const selectAllRoomsSQL = `
SELECT room_number, status FROM rooms ORDER BY room_number`

const upsertRoomStatusSQL = `
INSERT INTO rooms (room_number, status) VALUES (?, ?)
ON CONFLICT(room_number) DO UPDATE SET status = excluded.status`

const countBillPrefixSQL = `
SELECT COUNT(*) FROM bills WHERE bill_no LIKE ?`

const insertBillSQL = `
INSERT INTO bills
  (bill_no, guest_name, room_number, check_in_date, checkout_date,
   nights, rate, subtotal, cgst, sgst, total, date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const billColumns = `
  bill_no, guest_name, room_number, check_in_date, checkout_date,
  nights, rate, subtotal, cgst, sgst, total, date`

const selectBillSQL = `
SELECT` + billColumns + `
FROM bills WHERE bill_no = ?`

const listBillsSQL = `
SELECT` + billColumns + `
FROM bills ORDER BY date DESC, bill_no DESC`
