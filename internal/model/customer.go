package model

// Customer mirrors a row of the `customer` table. The custID is the
// application-assigned sequential identifier ("cust" + zero-padded number),
// not a database auto-increment. Password holds the bcrypt hash, never the
// plain text. MemberSince is stored in the service date format ("y-m-d",
// two-digit year) for compatibility with the existing data set.
type Customer struct {
	CustID      string // customer.custID
	Username    string // customer.username (unique, >= 5 chars)
	Password    string // customer.password (bcrypt hash)
	Fname       string // customer.fname
	Lname       string // customer.lname
	Email       string // customer.email
	CreditCard  string // customer.creditcard (opaque, not validated)
	MemberSince string // customer.membersince ("y-m-d")
}
