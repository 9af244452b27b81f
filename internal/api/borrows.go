package api

import (
	"fmt"
	"net/http"

	"librio/pkg/domain"
)

// BorrowRequest asks for a loan of one specific copy until dueDate
// ("2006-01-02"). Copy selection happens before this call: the client sends
// whichever available copy the server reported first.
type BorrowRequest struct {
	BookCopyID int64  `json:"bookCopyId"`
	DueDate    string `json:"dueDate"`
}

func (c *Client) Borrows() ([]domain.BorrowRecord, error) {
	return c.borrowList("/api/borrows")
}

func (c *Client) PendingBorrows() ([]domain.BorrowRecord, error) {
	return c.borrowList("/api/borrows/pending")
}

func (c *Client) OverdueBorrows() ([]domain.BorrowRecord, error) {
	return c.borrowList("/api/borrows/overdue")
}

func (c *Client) MyBorrows() ([]domain.BorrowRecord, error) {
	return c.borrowList("/api/borrows/my-borrows")
}

func (c *Client) MyCurrentBorrows() ([]domain.BorrowRecord, error) {
	return c.borrowList("/api/borrows/my-current")
}

func (c *Client) BorrowsByUser(userID int64) ([]domain.BorrowRecord, error) {
	return c.borrowList(fmt.Sprintf("/api/borrows/user/%d", userID))
}

func (c *Client) borrowList(path string) ([]domain.BorrowRecord, error) {
	var records []domain.BorrowRecord
	if err := c.doJSON(http.MethodGet, path, nil, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateBorrow submits a borrow request; the record starts out PENDING.
func (c *Client) CreateBorrow(req BorrowRequest) (domain.BorrowRecord, error) {
	var record domain.BorrowRecord
	if err := c.doJSON(http.MethodPost, "/api/borrows", nil, req, &record); err != nil {
		return domain.BorrowRecord{}, err
	}
	return record, nil
}

// ApproveBorrow moves a PENDING request to BORROWING.
func (c *Client) ApproveBorrow(id int64) (domain.BorrowRecord, error) {
	return c.borrowAction(id, "approve")
}

// RejectBorrow moves a PENDING request to REJECTED.
func (c *Client) RejectBorrow(id int64) (domain.BorrowRecord, error) {
	return c.borrowAction(id, "reject")
}

// ReturnBorrow confirms the copy came back, moving BORROWING or OVERDUE to
// RETURNED.
func (c *Client) ReturnBorrow(id int64) (domain.BorrowRecord, error) {
	return c.borrowAction(id, "return")
}

func (c *Client) borrowAction(id int64, action string) (domain.BorrowRecord, error) {
	var record domain.BorrowRecord
	path := fmt.Sprintf("/api/borrows/%d/%s", id, action)
	if err := c.doJSON(http.MethodPut, path, nil, nil, &record); err != nil {
		return domain.BorrowRecord{}, err
	}
	return record, nil
}
