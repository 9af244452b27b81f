package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"librio/internal/api"
	"librio/internal/borrow"
	"librio/internal/gate"
	"librio/pkg/domain"
)

func (c *CLI) manageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manage",
		Short: "Staff and admin screens",
	}
	cmd.AddCommand(c.manageBorrowsCmd(), c.manageFinesCmd(), c.manageBooksCmd(), c.manageUsersCmd())
	return cmd
}

// --- borrows ---

func (c *CLI) manageBorrowsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "borrows",
		Short: "Review and process borrow requests",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all borrow records",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteManageBorrows, func(cmd *cobra.Command, args []string) error {
			records, err := c.api.Borrows()
			if err != nil {
				return err
			}
			c.renderBorrows(records, time.Now())
			return nil
		}),
	}, &cobra.Command{
		Use:   "pending",
		Short: "List requests waiting for approval",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteManageBorrows, func(cmd *cobra.Command, args []string) error {
			records, err := c.api.PendingBorrows()
			if err != nil {
				return err
			}
			c.renderBorrows(records, time.Now())
			return nil
		}),
	}, &cobra.Command{
		Use:   "overdue",
		Short: "List overdue loans",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteManageBorrows, func(cmd *cobra.Command, args []string) error {
			records, err := c.api.OverdueBorrows()
			if err != nil {
				return err
			}
			c.renderBorrows(records, time.Now())
			return nil
		}),
	}, &cobra.Command{
		Use:   "user <user-id>",
		Short: "List one reader's borrow history",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteManageBorrows, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			records, err := c.api.BorrowsByUser(id)
			if err != nil {
				return err
			}
			c.renderBorrows(records, time.Now())
			return nil
		}),
	},
		c.borrowActionCmd("approve", "Approve a pending request", borrow.ActionApprove),
		c.borrowActionCmd("reject", "Reject a pending request", borrow.ActionReject),
		c.borrowActionCmd("return", "Confirm a copy came back", borrow.ActionReturn),
	)
	return cmd
}

func (c *CLI) borrowActionCmd(use, short string, action borrow.Action) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <borrow-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteManageBorrows, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			identity, _ := c.sessions.Current()
			if err := borrow.CanTrigger(identity.Role); err != nil {
				return err
			}
			rec, err := c.findBorrow(id)
			if err != nil {
				return err
			}
			// The transition must be legal from the record's current
			// state before the control is exercised at all.
			if err := borrow.Allowed(action, rec); err != nil {
				return err
			}

			var updated domain.BorrowRecord
			switch action {
			case borrow.ActionApprove:
				updated, err = c.api.ApproveBorrow(id)
			case borrow.ActionReject:
				updated, err = c.api.RejectBorrow(id)
			case borrow.ActionReturn:
				updated, err = c.api.ReturnBorrow(id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Borrow #%d is now %s.\n", updated.ID, updated.Status)

			// Confirm-then-refetch: the displayed list always reflects the
			// server state after this action.
			records, err := c.api.Borrows()
			if err != nil {
				return err
			}
			c.renderBorrows(records, time.Now())
			return nil
		}),
	}
}

func (c *CLI) findBorrow(id int64) (domain.BorrowRecord, error) {
	records, err := c.api.Borrows()
	if err != nil {
		return domain.BorrowRecord{}, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return domain.BorrowRecord{}, fmt.Errorf("borrow record %d not found", id)
}

// --- fines ---

func (c *CLI) manageFinesCmd() *cobra.Command {
	var reason string
	waive := &cobra.Command{
		Use:   "waive <fine-id>",
		Short: "Waive a pending fine (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteManageFines, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			identity, _ := c.sessions.Current()
			fine, err := c.findFine(id)
			if err != nil {
				return err
			}
			if err := borrow.CanWaiveFine(fine, identity.Role, reason); err != nil {
				return err
			}
			updated, err := c.api.WaiveFine(id, reason)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Fine #%d waived.\n", updated.ID)
			return c.refetchFines()
		}),
	}
	waive.Flags().StringVar(&reason, "reason", "", "why the fine is forgiven (required)")

	cmd := &cobra.Command{
		Use:   "fines",
		Short: "Review and settle fines",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all fines",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteManageFines, func(cmd *cobra.Command, args []string) error {
			fines, err := c.api.Fines()
			if err != nil {
				return err
			}
			c.renderFines(fines)
			return nil
		}),
	}, &cobra.Command{
		Use:   "pending",
		Short: "List unsettled fines",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteManageFines, func(cmd *cobra.Command, args []string) error {
			fines, err := c.api.PendingFines()
			if err != nil {
				return err
			}
			c.renderFines(fines)
			return nil
		}),
	}, &cobra.Command{
		Use:   "pay <fine-id>",
		Short: "Confirm a fine was paid",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteManageFines, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			identity, _ := c.sessions.Current()
			fine, err := c.findFine(id)
			if err != nil {
				return err
			}
			if err := borrow.CanPayFine(fine, identity.Role); err != nil {
				return err
			}
			updated, err := c.api.PayFine(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Fine #%d paid ($%.2f).\n", updated.ID, updated.Amount)
			return c.refetchFines()
		}),
	}, waive)
	return cmd
}

func (c *CLI) findFine(id int64) (domain.Fine, error) {
	fines, err := c.api.Fines()
	if err != nil {
		return domain.Fine{}, err
	}
	for _, fine := range fines {
		if fine.ID == id {
			return fine, nil
		}
	}
	return domain.Fine{}, fmt.Errorf("fine %d not found", id)
}

func (c *CLI) refetchFines() error {
	fines, err := c.api.Fines()
	if err != nil {
		return err
	}
	c.renderFines(fines)
	return nil
}

// --- books ---

func (c *CLI) manageBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Maintain the catalog",
	}
	cmd.AddCommand(c.bookAddCmd(), c.bookUpdateCmd(), c.bookDeleteCmd(), c.copyAddCmd(),
		c.authorAddCmd(), c.publisherAddCmd())
	return cmd
}

func (c *CLI) authorAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-author <name>",
		Short: "Add an author",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteManageBooks, func(cmd *cobra.Command, args []string) error {
			author, err := c.api.CreateAuthor(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Added author #%d %s.\n", author.ID, author.Name)
			return nil
		}),
	}
}

func (c *CLI) publisherAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-publisher <name>",
		Short: "Add a publisher",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteManageBooks, func(cmd *cobra.Command, args []string) error {
			publisher, err := c.api.CreatePublisher(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Added publisher #%d %s.\n", publisher.ID, publisher.Name)
			return nil
		}),
	}
}

func bookFlags(cmd *cobra.Command, req *api.BookRequest) {
	cmd.Flags().StringVar(&req.Title, "title", "", "book title")
	cmd.Flags().Int64Var(&req.PublisherID, "publisher-id", 0, "publisher id")
	cmd.Flags().Int64Var(&req.CategoryID, "category-id", 0, "category id")
	cmd.Flags().StringVar(&req.Description, "description", "", "description")
	cmd.Flags().StringVar(&req.PublisherDate, "published", "", "publication date (2006-01-02)")
	cmd.Flags().StringVar(&req.ISBN, "isbn", "", "ISBN")
	cmd.Flags().IntVar(&req.TotalQuantity, "quantity", 1, "total copies")
	cmd.Flags().Int64SliceVar(&req.AuthorIDs, "author-id", nil, "author id (repeatable)")
}

func (c *CLI) bookAddCmd() *cobra.Command {
	var req api.BookRequest
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteManageBooks, func(cmd *cobra.Command, args []string) error {
			if req.Title == "" {
				return fmt.Errorf("--title is required")
			}
			if err := validateISBN(req.ISBN); err != nil {
				return err
			}
			book, err := c.api.CreateBook(req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Added book #%d %q.\n", book.ID, book.Title)
			return nil
		}),
	}
	bookFlags(cmd, &req)
	return cmd
}

func (c *CLI) bookUpdateCmd() *cobra.Command {
	var req api.BookRequest
	cmd := &cobra.Command{
		Use:   "update <book-id>",
		Short: "Update a book",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteManageBooks, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := validateISBN(req.ISBN); err != nil {
				return err
			}
			book, err := c.api.UpdateBook(id, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Updated book #%d %q.\n", book.ID, book.Title)
			return nil
		}),
	}
	bookFlags(cmd, &req)
	return cmd
}

func (c *CLI) bookDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <book-id>",
		Short: "Remove a book",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteManageBooks, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.api.DeleteBook(id); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Deleted book #%d.\n", id)
			return nil
		}),
	}
}

func (c *CLI) copyAddCmd() *cobra.Command {
	var libraryID int64
	cmd := &cobra.Command{
		Use:   "add-copy <book-id>",
		Short: "Add a physical copy at a branch",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteManageBooks, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if libraryID == 0 {
				return fmt.Errorf("--library-id is required")
			}
			cp, err := c.api.CreateBookCopy(id, libraryID)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Added copy #%d of book #%d.\n", cp.ID, id)
			return nil
		}),
	}
	cmd.Flags().Int64Var(&libraryID, "library-id", 0, "branch that holds the copy")
	return cmd
}

// validateISBN rejects characters that can never appear in an ISBN before
// the request leaves the client.
func validateISBN(isbn string) error {
	for _, r := range isbn {
		if (r < '0' || r > '9') && r != '-' && r != 'X' && r != 'x' {
			return fmt.Errorf("ISBN may only contain digits, dashes, and X")
		}
	}
	return nil
}

// --- users ---

func (c *CLI) manageUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Administer accounts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: c.guarded(gate.RouteManageUsers, func(cmd *cobra.Command, args []string) error {
			users, err := c.api.Users()
			if err != nil {
				return err
			}
			c.renderUsers(users)
			return nil
		}),
	}, &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteManageUsers, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			user, err := c.api.User(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "#%d %s <%s> role=%s\n", user.ID, user.Username, user.Email, user.Role)
			if user.StudentCode != "" {
				fmt.Fprintf(c.out, "student code: %s\n", user.StudentCode)
			}
			if user.Phone != "" {
				fmt.Fprintf(c.out, "phone: %s\n", user.Phone)
			}
			if user.Address != "" {
				fmt.Fprintf(c.out, "address: %s\n", user.Address)
			}
			return nil
		}),
	}, &cobra.Command{
		Use:   "set-role <user-id> <role>",
		Short: "Change an account's role",
		Args:  cobra.ExactArgs(2),
		RunE: c.guarded(gate.RouteManageUsers, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			role := domain.Role(args[1])
			if !role.Valid() {
				return fmt.Errorf("role must be one of USER, STAFF, ADMIN")
			}
			user, err := c.api.UpdateUserRole(id, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s is now %s.\n", user.Username, user.Role)
			return nil
		}),
	}, &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(gate.RouteManageUsers, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.api.DeleteUser(id); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Deleted user #%d.\n", id)
			return nil
		}),
	})
	return cmd
}
