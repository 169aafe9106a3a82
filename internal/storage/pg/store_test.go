package pg

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"

	"github.com/newskeeper/newskeeper/internal/domain"
	"github.com/newskeeper/newskeeper/pkg/pagination"
	pkgtesting "github.com/newskeeper/newskeeper/pkg/testing"
)

var (
	testCtx      context.Context
	testPool     *ConnectionPool
	testAccounts *AccountStore
	testSaved    *SavedStore
)

func TestMain(m *testing.M) {
	testCtx = context.Background()

	pg, err := pkgtesting.NewPGContainer(testCtx, pkgtesting.PGConfig{
		Database: "news_test_db",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		panic(err)
	}
	defer testcontainers.TerminateContainer(pg.Container)

	testPool, err = NewConnectionPool(testCtx, PoolConfig{ConnStr: pg.ConnString})
	if err != nil {
		panic(err)
	}
	defer testPool.Close()

	testAccounts = NewAccountStore(testPool)
	testSaved = NewSavedStore(testPool)

	os.Exit(m.Run())
}

func truncateTables(t *testing.T) {
	t.Helper()
	_, err := testPool.GetConn().Exec(testCtx, "TRUNCATE TABLE accounts CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

func mustCreateAccount(t *testing.T, email string) domain.Account {
	t.Helper()
	account, err := testAccounts.CreateIdentity(testCtx, domain.Account{
		Email:        email,
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	return account
}

func TestAccountStore_CreateIdentity_DuplicateEmail(t *testing.T) {
	truncateTables(t)
	defer truncateTables(t)

	mustCreateAccount(t, "a@x.com")

	_, err := testAccounts.CreateIdentity(testCtx, domain.Account{Email: "a@x.com", PasswordHash: "y"})
	if err == nil {
		t.Fatal("expected duplicate email to fail")
	}
}

func TestAccountStore_GetByEmail_MissingIsNil(t *testing.T) {
	truncateTables(t)
	defer truncateTables(t)

	got, err := testAccounts.GetByEmail(testCtx, "nobody@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil account, got %+v", got)
	}
}

func TestAccountStore_ProfileRoundTrip(t *testing.T) {
	truncateTables(t)
	defer truncateTables(t)

	account := mustCreateAccount(t, "a@x.com")

	created, err := testAccounts.CreateProfile(testCtx, domain.UserProfile{
		AccountID: account.ID,
		Email:     "a@x.com",
		Username:  "alice",
		AvatarURL: "https://avatars/alice",
	})
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	got, err := testAccounts.GetProfileByAccount(testCtx, account.ID)
	if err != nil {
		t.Fatalf("failed to load profile: %v", err)
	}
	if got == nil {
		t.Fatal("expected profile, got nil")
	}
	if got.ID != created.ID || got.Username != "alice" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	missing, err := testAccounts.GetProfileByAccount(testCtx, uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil profile for unknown account, got %+v", missing)
	}
}

func TestAccountStore_DeleteIdentity_CascadesProfile(t *testing.T) {
	truncateTables(t)
	defer truncateTables(t)

	account := mustCreateAccount(t, "a@x.com")
	_, err := testAccounts.CreateProfile(testCtx, domain.UserProfile{
		AccountID: account.ID,
		Email:     "a@x.com",
		Username:  "alice",
	})
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	if err := testAccounts.DeleteIdentity(testCtx, account.ID); err != nil {
		t.Fatalf("failed to delete identity: %v", err)
	}

	got, err := testAccounts.GetProfileByAccount(testCtx, account.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatal("expected profile to cascade away with the identity")
	}
}

func newSavedArticle(accountID uuid.UUID, newsID string) domain.SavedArticle {
	return domain.SavedArticle{
		AccountID:   accountID,
		NewsID:      newsID,
		Title:       "T",
		Description: "D",
		Link:        newsID,
	}
}

func TestSavedStore_SaveAndListAndDelete(t *testing.T) {
	truncateTables(t)
	defer truncateTables(t)

	account := mustCreateAccount(t, "a@x.com")

	first, err := testSaved.Save(testCtx, newSavedArticle(account.ID, "https://x/1"))
	if err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	_, err = testSaved.Save(testCtx, newSavedArticle(account.ID, "https://x/2"))
	if err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	result, err := testSaved.List(testCtx, account.ID, &pagination.OffsetRequest{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(result.Items) != 2 || result.Total != 2 {
		t.Fatalf("expected 2 saved articles, got %d (total %d)", len(result.Items), result.Total)
	}

	if err := testSaved.Delete(testCtx, first.ID, account.ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}

	result, err = testSaved.List(testCtx, account.ID, &pagination.OffsetRequest{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 saved article after delete, got %d", len(result.Items))
	}
	if result.Items[0].NewsID == first.NewsID {
		t.Fatal("deleted article still listed")
	}
}

func TestSavedStore_DuplicateSaveIsAlreadySaved(t *testing.T) {
	truncateTables(t)
	defer truncateTables(t)

	account := mustCreateAccount(t, "a@x.com")

	if _, err := testSaved.Save(testCtx, newSavedArticle(account.ID, "https://x/1")); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	_, err := testSaved.Save(testCtx, newSavedArticle(account.ID, "https://x/1"))
	if !errors.Is(err, ErrAlreadySaved) {
		t.Fatalf("expected ErrAlreadySaved, got %v", err)
	}
}

// Two simultaneous saves of the same article must leave exactly one row:
// the unique index makes the insert atomic, closing the old
// check-then-insert race.
func TestSavedStore_ConcurrentSavesLeaveOneRow(t *testing.T) {
	truncateTables(t)
	defer truncateTables(t)

	account := mustCreateAccount(t, "a@x.com")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = testSaved.Save(testCtx, newSavedArticle(account.ID, "https://x/1"))
		}(i)
	}
	wg.Wait()

	var winners, losers int
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, ErrAlreadySaved):
			losers++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if winners != 1 || losers != 1 {
		t.Fatalf("expected exactly one winner, got %d winners, %d losers", winners, losers)
	}

	var count int
	if err := testPool.GetConn().QueryRow(testCtx, "SELECT COUNT(*) FROM saved_news").Scan(&count); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 row, got %d", count)
	}
}

func TestSavedStore_DeleteScopedByAccount(t *testing.T) {
	truncateTables(t)
	defer truncateTables(t)

	owner := mustCreateAccount(t, "a@x.com")
	intruder := mustCreateAccount(t, "b@x.com")

	article, err := testSaved.Save(testCtx, newSavedArticle(owner.ID, "https://x/1"))
	if err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	err = testSaved.Delete(testCtx, article.ID, intruder.ID)
	if !errors.Is(err, ErrSavedNotFound) {
		t.Fatalf("expected ErrSavedNotFound, got %v", err)
	}
}
