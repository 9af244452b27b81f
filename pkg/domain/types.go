package domain

type Role string

const (
	RoleUser  Role = "USER"
	RoleStaff Role = "STAFF"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the roles the server issues.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

type BorrowStatus string

const (
	BorrowPending   BorrowStatus = "PENDING"
	BorrowBorrowing BorrowStatus = "BORROWING"
	BorrowOverdue   BorrowStatus = "OVERDUE"
	BorrowReturned  BorrowStatus = "RETURNED"
	BorrowRejected  BorrowStatus = "REJECTED"
)

type FineStatus string

const (
	FinePending FineStatus = "PENDING"
	FinePaid    FineStatus = "PAID"
	FineWaived  FineStatus = "WAIVED"
)

// Identity is the authenticated principal held by the session store.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

type Book struct {
	ID                int64    `json:"id"`
	Title             string   `json:"title"`
	ISBN              string   `json:"isbn"`
	Description       string   `json:"description"`
	PublisherID       int64    `json:"publisherId"`
	PublisherName     string   `json:"publisherName"`
	CategoryID        int64    `json:"categoryId"`
	CategoryName      string   `json:"categoryName"`
	PublisherDate     string   `json:"publisherDate"`
	TotalQuantity     int      `json:"totalQuantity"`
	AvailableQuantity int      `json:"availableQuantity"`
	Status            string   `json:"status"`
	AuthorIDs         []int64  `json:"authorIds"`
	AuthorNames       []string `json:"authorNames"`
	LibraryNames      []string `json:"libraryNames"`
}

type BookCopy struct {
	ID          int64  `json:"id"`
	BookID      int64  `json:"bookId"`
	BookTitle   string `json:"bookTitle"`
	LibraryID   int64  `json:"libraryId"`
	LibraryName string `json:"libraryName"`
	Status      string `json:"status"`
}

// BorrowRecord mirrors the server's borrow DTO. Dates are ISO "2006-01-02"
// strings exactly as sent; ReturnDate is empty until the copy comes back.
// IsOverdue may duplicate what Status already says, see borrow.IsOverdue.
type BorrowRecord struct {
	ID            int64        `json:"id"`
	UserID        int64        `json:"userId"`
	Username      string       `json:"username"`
	BookCopyID    int64        `json:"bookCopyId"`
	BookTitle     string       `json:"bookTitle"`
	LibraryName   string       `json:"libraryName"`
	BorrowDate    string       `json:"borrowDate"`
	DueDate       string       `json:"dueDate"`
	ReturnDate    string       `json:"returnDate,omitempty"`
	Status        BorrowStatus `json:"status"`
	DailyFineRate float64      `json:"dailyFineRate"`
	IsOverdue     bool         `json:"isOverdue"`
	OverdueDays   int          `json:"overdueDays"`
}

type Fine struct {
	ID             int64      `json:"id"`
	BorrowRecordID int64      `json:"borrowRecordId"`
	BookTitle      string     `json:"bookTitle"`
	Username       string     `json:"username"`
	LibraryName    string     `json:"libraryName"`
	Amount         float64    `json:"amount"`
	Status         FineStatus `json:"status"`
	IssuedDate     string     `json:"issuedDate"`
	LateDays       int        `json:"lateDays"`
	Reason         string     `json:"reason,omitempty"`
}

type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	StudentCode string `json:"studentCode,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Publisher struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Library struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

type ActivityLog struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	UserRole  string `json:"userRole"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}
