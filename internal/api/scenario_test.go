package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"librio/internal/borrow"
	"librio/pkg/domain"
)

// fakeLibrary is a minimal stateful server scripting the borrow lifecycle
// the way the real one transitions records.
type fakeLibrary struct {
	borrow domain.BorrowRecord
	fine   domain.Fine
}

func (f *fakeLibrary) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/borrows", func(w http.ResponseWriter, r *http.Request) {
		var req BorrowRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.borrow = domain.BorrowRecord{
			ID:         1,
			BookCopyID: req.BookCopyID,
			BookTitle:  "Dune",
			Username:   "alice",
			BorrowDate: time.Now().Format(borrow.DateLayout),
			DueDate:    req.DueDate,
			Status:     domain.BorrowPending,
		}
		writeData(w, f.borrow)
	})
	mux.HandleFunc("PUT /api/borrows/1/approve", func(w http.ResponseWriter, r *http.Request) {
		if f.borrow.Status != domain.BorrowPending {
			conflict(w, "This request has already been processed.")
			return
		}
		f.borrow.Status = domain.BorrowBorrowing
		writeData(w, f.borrow)
	})
	mux.HandleFunc("PUT /api/borrows/1/reject", func(w http.ResponseWriter, r *http.Request) {
		if f.borrow.Status != domain.BorrowPending {
			conflict(w, "This request has already been processed.")
			return
		}
		f.borrow.Status = domain.BorrowRejected
		writeData(w, f.borrow)
	})
	mux.HandleFunc("PUT /api/borrows/1/return", func(w http.ResponseWriter, r *http.Request) {
		if f.borrow.Status != domain.BorrowBorrowing && f.borrow.Status != domain.BorrowOverdue {
			conflict(w, "This book has either not been borrowed or has already been returned.")
			return
		}
		f.borrow.Status = domain.BorrowReturned
		f.borrow.ReturnDate = time.Now().Format(borrow.DateLayout)
		writeData(w, f.borrow)
	})
	mux.HandleFunc("PUT /api/fines/1/waive", func(w http.ResponseWriter, r *http.Request) {
		if f.fine.Status != domain.FinePending {
			conflict(w, "This fine has already been processed.")
			return
		}
		f.fine.Status = domain.FineWaived
		f.fine.Reason = r.URL.Query().Get("reason")
		writeData(w, f.fine)
	})
	mux.HandleFunc("PUT /api/fines/1/pay", func(w http.ResponseWriter, r *http.Request) {
		if f.fine.Status != domain.FinePending {
			conflict(w, "This fine has already been processed.")
			return
		}
		f.fine.Status = domain.FinePaid
		writeData(w, f.fine)
	})
	return mux
}

func conflict(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusConflict)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

func TestBorrowLifecycleScenario(t *testing.T) {
	lib := &fakeLibrary{}
	srv := httptest.NewServer(lib.handler())
	t.Cleanup(srv.Close)
	client, err := NewClient(Config{BaseURL: srv.URL, Tokens: staticToken("tok")})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	submitted := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec, err := client.CreateBorrow(BorrowRequest{
		BookCopyID: 11,
		DueDate:    borrow.DueDate(submitted, 14),
	})
	if err != nil {
		t.Fatalf("create borrow: %v", err)
	}
	if rec.Status != domain.BorrowPending {
		t.Fatalf("fresh request status = %s, want PENDING", rec.Status)
	}
	if rec.DueDate != "2026-03-15" {
		t.Fatalf("due date = %s, want submission + 14 days", rec.DueDate)
	}

	// A pending request is not returnable; the client must not even offer
	// the control, and the server rejects the call too.
	if err := borrow.Allowed(borrow.ActionReturn, rec); err == nil {
		t.Fatal("return should be illegal while PENDING")
	}
	if _, err := client.ReturnBorrow(1); err == nil {
		t.Fatal("server should refuse returning a PENDING request")
	}

	rec, err = client.ApproveBorrow(1)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if rec.Status != domain.BorrowBorrowing {
		t.Fatalf("status after approve = %s, want BORROWING", rec.Status)
	}

	// Approve and reject are mutually exclusive: once processed, the other
	// branch is gone.
	if err := borrow.Allowed(borrow.ActionReject, rec); err == nil {
		t.Fatal("reject should be illegal after approve")
	}
	if _, err := client.RejectBorrow(1); err == nil {
		t.Fatal("server should refuse rejecting an approved request")
	}

	// Time passes the due date: the overdue condition is derived, no
	// transition happens.
	later := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	if !borrow.IsOverdue(rec, later) {
		t.Fatal("record should read as overdue past its due date")
	}
	if borrow.IsOverdue(rec, submitted.AddDate(0, 0, 3)) {
		t.Fatal("record should not read as overdue before its due date")
	}

	rec, err = client.ReturnBorrow(1)
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if rec.Status != domain.BorrowReturned {
		t.Fatalf("status after return = %s, want RETURNED", rec.Status)
	}
	if !borrow.Terminal(rec) {
		t.Fatal("returned record should be terminal")
	}
	if _, err := client.ReturnBorrow(1); err == nil {
		t.Fatal("no further transitions after RETURNED")
	}
	if _, err := client.ApproveBorrow(1); err == nil {
		t.Fatal("no further transitions after RETURNED")
	}
}

func TestFineWaiveScenario(t *testing.T) {
	lib := &fakeLibrary{fine: domain.Fine{ID: 1, Status: domain.FinePending, Amount: 4.5}}
	srv := httptest.NewServer(lib.handler())
	t.Cleanup(srv.Close)
	client, err := NewClient(Config{BaseURL: srv.URL, Tokens: staticToken("tok")})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	fine, err := client.WaiveFine(1, "lost receipt")
	if err != nil {
		t.Fatalf("waive: %v", err)
	}
	if fine.Status != domain.FineWaived {
		t.Fatalf("status = %s, want WAIVED", fine.Status)
	}
	if fine.Reason != "lost receipt" {
		t.Fatalf("reason = %q, want the waiver text", fine.Reason)
	}

	// Waived is terminal: payment is no longer accepted, client-side and
	// server-side alike.
	if err := borrow.CanPayFine(fine, domain.RoleStaff); err == nil {
		t.Fatal("pay should be illegal after waive")
	}
	if _, err := client.PayFine(1); err == nil {
		t.Fatal("server should refuse paying a waived fine")
	}
}
