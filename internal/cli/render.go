package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"librio/pkg/domain"
)

func (c *CLI) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
}

func (c *CLI) renderBooks(books []domain.Book) {
	if len(books) == 0 {
		fmt.Fprintln(c.out, "No books found.")
		return
	}
	w := c.table()
	fmt.Fprintln(w, "ID\tTITLE\tAUTHORS\tCATEGORY\tAVAILABLE")
	for _, b := range books {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d/%d\n",
			b.ID, b.Title, strings.Join(b.AuthorNames, ", "), b.CategoryName,
			b.AvailableQuantity, b.TotalQuantity)
	}
	w.Flush()
}

func (c *CLI) renderBookDetail(book domain.Book, copies []domain.BookCopy) {
	fmt.Fprintf(c.out, "#%d %s\n", book.ID, book.Title)
	if len(book.AuthorNames) > 0 {
		fmt.Fprintf(c.out, "by %s\n", strings.Join(book.AuthorNames, ", "))
	}
	if book.ISBN != "" {
		fmt.Fprintf(c.out, "ISBN %s\n", book.ISBN)
	}
	if book.PublisherName != "" {
		fmt.Fprintf(c.out, "publisher: %s\n", book.PublisherName)
	}
	if book.CategoryName != "" {
		fmt.Fprintf(c.out, "category: %s\n", book.CategoryName)
	}
	if book.Description != "" {
		fmt.Fprintln(c.out, book.Description)
	}
	fmt.Fprintf(c.out, "available: %d of %d\n", book.AvailableQuantity, book.TotalQuantity)
	if len(copies) > 0 {
		w := c.table()
		fmt.Fprintln(w, "COPY\tBRANCH\tSTATUS")
		for _, cp := range copies {
			fmt.Fprintf(w, "%d\t%s\t%s\n", cp.ID, cp.LibraryName, cp.Status)
		}
		w.Flush()
	}
}

func (c *CLI) renderBorrows(records []domain.BorrowRecord, now time.Time) {
	if len(records) == 0 {
		fmt.Fprintln(c.out, "No borrow records.")
		return
	}
	w := c.table()
	fmt.Fprintln(w, "ID\tBOOK\tREADER\tBORROWED\tDUE\tSTATUS\t")
	for _, rec := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID, rec.BookTitle, rec.Username, rec.BorrowDate, rec.DueDate,
			statusLabel(rec, now), dueLabel(rec, now))
	}
	w.Flush()
}

func (c *CLI) renderFines(fines []domain.Fine) {
	if len(fines) == 0 {
		fmt.Fprintln(c.out, "No fines.")
		return
	}
	w := c.table()
	fmt.Fprintln(w, "ID\tBOOK\tREADER\tISSUED\tLATE\tAMOUNT\tSTATUS\tREASON")
	for _, f := range fines {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%dd\t$%.2f\t%s\t%s\n",
			f.ID, f.BookTitle, f.Username, f.IssuedDate, f.LateDays, f.Amount, f.Status, f.Reason)
	}
	w.Flush()
}

func (c *CLI) renderUsers(users []domain.User) {
	if len(users) == 0 {
		fmt.Fprintln(c.out, "No users.")
		return
	}
	w := c.table()
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role)
	}
	w.Flush()
}

func (c *CLI) renderLogs(logs []domain.ActivityLog) {
	if len(logs) == 0 {
		fmt.Fprintln(c.out, "No activity logs.")
		return
	}
	w := c.table()
	fmt.Fprintln(w, "ID\tWHEN\tWHO\tROLE\tACTION")
	for _, l := range logs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", l.ID, l.Timestamp, l.Username, l.UserRole, l.Action)
	}
	w.Flush()
}

func (c *CLI) renderCatalog(authors []domain.Author, publishers []domain.Publisher, categories []domain.Category, libraries []domain.Library) {
	fmt.Fprintln(c.out, "Authors:")
	for _, a := range authors {
		fmt.Fprintf(c.out, "  %d\t%s\n", a.ID, a.Name)
	}
	fmt.Fprintln(c.out, "Publishers:")
	for _, p := range publishers {
		fmt.Fprintf(c.out, "  %d\t%s\n", p.ID, p.Name)
	}
	fmt.Fprintln(c.out, "Categories:")
	for _, ct := range categories {
		fmt.Fprintf(c.out, "  %d\t%s\n", ct.ID, ct.Name)
	}
	fmt.Fprintln(c.out, "Branches:")
	for _, l := range libraries {
		fmt.Fprintf(c.out, "  %d\t%s\n", l.ID, l.Name)
	}
}
