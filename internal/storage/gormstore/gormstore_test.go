package gormstore_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/employee"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/storage/gormstore"
)

// openTestDB connects to HRDESK_MYSQL_TEST_DSN. The database should be
// disposable: tables are migrated and rows are left behind.
func openTestDB(t *testing.T) *gormstore.DB {
	t.Helper()
	dsn := os.Getenv("HRDESK_MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("HRDESK_MYSQL_TEST_DSN not set")
	}
	db, err := gormstore.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(context.Background()))
	return db
}

func uniqueEmail(prefix string) string {
	return prefix + "+" + time.Now().Format("150405.000000000") + "@example.com"
}

func TestEmployeesRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := db.Employees()

	emp := employee.Employee{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     uniqueEmail("ada"),
		Role:      auth.RoleManager,
		JoinDate:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, &emp))
	require.NotZero(t, emp.ID)

	got, err := repo.FindByEmail(ctx, emp.Email)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleManager, got.Role)
	assert.Equal(t, "", got.Department)

	dup := emp
	assert.ErrorIs(t, repo.Create(ctx, &dup), employee.ErrEmailTaken)

	got.Department = "IT"
	require.NoError(t, repo.Save(ctx, got))
	again, err := repo.FindByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "IT", again.Department)

	_, err = repo.FindByID(ctx, -1)
	assert.ErrorIs(t, err, employee.ErrNotFound)
	assert.ErrorIs(t, repo.Save(ctx, employee.Employee{ID: -1, Role: auth.RoleEmployee}), employee.ErrNotFound)
}

func TestLeaveDecideFirstWriterWins(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	emp := employee.Employee{FirstName: "Grace", Email: uniqueEmail("grace"), Role: auth.RoleEmployee, JoinDate: time.Now().UTC()}
	require.NoError(t, db.Employees().Create(ctx, &emp))

	req := leave.Request{
		EmployeeID:  emp.ID,
		LeaveType:   "Annual",
		StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		Status:      leave.StatusPending,
		RequestedOn: time.Now().UTC(),
	}
	repo := db.Leaves()
	require.NoError(t, repo.Create(ctx, &req))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Decide(ctx, leave.Decision{RequestID: req.ID, Status: leave.StatusApproved, ManagerID: emp.ID, DecidedAt: time.Now().UTC()})
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)

	got, err := repo.FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, got.Status)
	assert.Equal(t, "Grace", got.EmployeeFirstName)

	deleted, err := repo.Delete(ctx, req.ID, emp.ID+1000)
	require.NoError(t, err)
	assert.False(t, deleted)
}
