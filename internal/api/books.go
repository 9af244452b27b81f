package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"librio/pkg/domain"
)

// BookRequest carries the create/update form for a catalog entry.
type BookRequest struct {
	Title         string  `json:"title"`
	PublisherID   int64   `json:"publisherId,omitempty"`
	CategoryID    int64   `json:"categoryId,omitempty"`
	Description   string  `json:"description,omitempty"`
	PublisherDate string  `json:"publisherDate,omitempty"`
	ISBN          string  `json:"isbn,omitempty"`
	TotalQuantity int     `json:"totalQuantity"`
	Status        string  `json:"status,omitempty"`
	AuthorIDs     []int64 `json:"authorIds,omitempty"`
}

// BookPage is one page of search results.
type BookPage struct {
	Content       []domain.Book `json:"content"`
	TotalElements int64         `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
	Number        int           `json:"number"`
}

func (c *Client) Books() ([]domain.Book, error) {
	var books []domain.Book
	if err := c.doJSON(http.MethodGet, "/api/books", nil, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) Book(id int64) (domain.Book, error) {
	var book domain.Book
	path := fmt.Sprintf("/api/books/%d", id)
	if err := c.doJSON(http.MethodGet, path, nil, nil, &book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

func (c *Client) SearchBooks(keyword string, page, size int) (BookPage, error) {
	query := url.Values{
		"keyword": {keyword},
		"page":    {strconv.Itoa(page)},
		"size":    {strconv.Itoa(size)},
	}
	var result BookPage
	if err := c.doJSON(http.MethodGet, "/api/books/search", query, nil, &result); err != nil {
		return BookPage{}, err
	}
	return result, nil
}

func (c *Client) CreateBook(req BookRequest) (domain.Book, error) {
	var book domain.Book
	if err := c.doJSON(http.MethodPost, "/api/books", nil, req, &book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

func (c *Client) UpdateBook(id int64, req BookRequest) (domain.Book, error) {
	var book domain.Book
	path := fmt.Sprintf("/api/books/%d", id)
	if err := c.doJSON(http.MethodPut, path, nil, req, &book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

func (c *Client) DeleteBook(id int64) error {
	return c.doJSON(http.MethodDelete, fmt.Sprintf("/api/books/%d", id), nil, nil, nil)
}

// CopiesByBook lists all physical copies of one book.
func (c *Client) CopiesByBook(bookID int64) ([]domain.BookCopy, error) {
	var copies []domain.BookCopy
	path := fmt.Sprintf("/api/book-copies/book/%d", bookID)
	if err := c.doJSON(http.MethodGet, path, nil, nil, &copies); err != nil {
		return nil, err
	}
	return copies, nil
}

// AvailableCopies lists the copies of a book currently free to borrow.
// Order is server-defined; borrowers take the first entry.
func (c *Client) AvailableCopies(bookID int64) ([]domain.BookCopy, error) {
	var copies []domain.BookCopy
	path := fmt.Sprintf("/api/book-copies/book/%d/available", bookID)
	if err := c.doJSON(http.MethodGet, path, nil, nil, &copies); err != nil {
		return nil, err
	}
	return copies, nil
}

func (c *Client) CreateBookCopy(bookID, libraryID int64) (domain.BookCopy, error) {
	payload := map[string]int64{"bookId": bookID, "libraryId": libraryID}
	var copy domain.BookCopy
	if err := c.doJSON(http.MethodPost, "/api/book-copies", nil, payload, &copy); err != nil {
		return domain.BookCopy{}, err
	}
	return copy, nil
}
