package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"librio/internal/api"
	"librio/internal/borrow"
	"librio/internal/gate"
	"librio/pkg/domain"
)

func (c *CLI) booksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse the catalog",
	}
	cmd.AddCommand(c.booksListCmd(), c.booksSearchCmd(), c.booksShowCmd(), c.booksBorrowCmd())
	return cmd
}

func (c *CLI) booksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all books",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteBooks, func(cmd *cobra.Command, args []string) error {
			books, err := c.api.Books()
			if err != nil {
				return err
			}
			c.renderBooks(books)
			return nil
		}),
	}
}

func (c *CLI) booksSearchCmd() *cobra.Command {
	var page, size int
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search books by keyword",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteBooks, func(cmd *cobra.Command, args []string) error {
			result, err := c.api.SearchBooks(args[0], page, size)
			if err != nil {
				return err
			}
			c.renderBooks(result.Content)
			if result.TotalPages > 1 {
				fmt.Fprintf(c.out, "page %d of %d (%d matches)\n", result.Number+1, result.TotalPages, result.TotalElements)
			}
			return nil
		}),
	}
	cmd.Flags().IntVar(&page, "page", 0, "result page")
	cmd.Flags().IntVar(&size, "size", 10, "page size")
	return cmd
}

func (c *CLI) booksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <book-id>",
		Short: "Show one book and its copies",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteBooks, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			book, err := c.api.Book(id)
			if err != nil {
				return err
			}
			copies, err := c.api.CopiesByBook(id)
			if err != nil {
				return err
			}
			c.renderBookDetail(book, copies)
			return nil
		}),
	}
}

func (c *CLI) booksBorrowCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "borrow <book-id>",
		Short: "Request to borrow a book",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteBooks, func(cmd *cobra.Command, args []string) error {
			identity, _ := c.sessions.Current()
			if identity.Role != domain.RoleUser {
				return errors.New("only readers may request borrows")
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			book, err := c.api.Book(id)
			if err != nil {
				return err
			}
			if book.AvailableQuantity < 1 {
				return fmt.Errorf("no copies of %q are available right now", book.Title)
			}
			copies, err := c.api.AvailableCopies(id)
			if err != nil {
				return err
			}
			if len(copies) == 0 {
				return fmt.Errorf("no copies of %q are available right now", book.Title)
			}

			if !cmd.Flags().Changed("days") {
				days = c.defaultDays()
			}
			// Requested durations outside 1..30 days are clamped, not
			// refused; the due date comes from the clamped value.
			clamped := borrow.ClampDays(days)
			if clamped != days {
				fmt.Fprintf(c.out, "loan duration adjusted to %d days\n", clamped)
			}
			record, err := c.api.CreateBorrow(api.BorrowRequest{
				BookCopyID: copies[0].ID,
				DueDate:    borrow.DueDate(time.Now(), clamped),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Borrow request #%d for %q submitted, due %s. Waiting for approval.\n",
				record.ID, book.Title, record.DueDate)
			return nil
		}),
	}
	cmd.Flags().IntVar(&days, "days", 0, "loan duration in days (1-30)")
	return cmd
}

// catalogCmd shows the reference data the catalog hangs off: authors,
// publishers, categories, and library branches, fetched concurrently since
// the four reads are independent.
func (c *CLI) catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [author-name]",
		Short: "Show authors, publishers, categories, and branches",
		Args:  cobra.MaximumNArgs(1),
		RunE: c.guarded(gate.RouteBooks, func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				authors, err := c.api.SearchAuthors(args[0])
				if err != nil {
					return err
				}
				if len(authors) == 0 {
					fmt.Fprintln(c.out, "No matching authors.")
					return nil
				}
				for _, a := range authors {
					fmt.Fprintf(c.out, "%d\t%s\n", a.ID, a.Name)
				}
				return nil
			}
			var (
				authors    []domain.Author
				publishers []domain.Publisher
				categories []domain.Category
				libraries  []domain.Library
			)
			var g errgroup.Group
			g.Go(func() error { var err error; authors, err = c.api.Authors(); return err })
			g.Go(func() error { var err error; publishers, err = c.api.Publishers(); return err })
			g.Go(func() error { var err error; categories, err = c.api.Categories(); return err })
			g.Go(func() error { var err error; libraries, err = c.api.Libraries(); return err })
			if err := g.Wait(); err != nil {
				return err
			}
			c.renderCatalog(authors, publishers, categories, libraries)
			return nil
		}),
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a valid id", s)
	}
	return id, nil
}

func (c *CLI) defaultDays() int {
	return c.cfg.DefaultBorrowDays
}
