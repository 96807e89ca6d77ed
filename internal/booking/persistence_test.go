package booking

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grandprix/internal/domain"
)

func openDir(t *testing.T, dir string) *Store {
	t.Helper()
	store, err := Open(Config{DataDir: dir})
	require.NoError(t, err)
	return store
}

func TestReopen_RestoresFullState(t *testing.T) {
	dir := t.TempDir()
	first := openDir(t, dir)

	_, err := first.CreateUser("USR-1", "alice", "secret123", "alice@example.com", "555-0101")
	require.NoError(t, err)
	_, err = first.CreateAdmin("ADM-2", "boss", "secret123", "boss@example.com", 2, "Operations", "")
	require.NoError(t, err)
	mintTestTicket(t, first, "TKT-1", 100, domain.CategoryPremium)

	order := first.CreateOrder(first.GetUser("alice"))
	require.NoError(t, first.AddTicketToOrder(order.ID(), "TKT-1"))
	require.NoError(t, first.SetOrderPayment(order.ID(), domain.PaymentCreditCard))
	confirmed, err := first.ConfirmOrder(order.ID())
	require.NoError(t, err)
	require.True(t, confirmed)

	second := openDir(t, dir)

	alice := second.GetUser("alice")
	require.NotNil(t, alice)
	assert.Equal(t, "USR-1", alice.ID())
	assert.Equal(t, "alice@example.com", alice.Email())
	assert.Equal(t, "555-0101", alice.Phone())
	assert.True(t, alice.VerifyPassword("secret123"), "the stored hash keeps working")

	boss := second.GetAdmin("boss")
	require.NotNil(t, boss)
	assert.Equal(t, 2, boss.AdminLevel())
	assert.Equal(t, "Operations", boss.Department())
	assert.Same(t, boss, second.GetUser("boss"))

	require.NotNil(t, second.GetAdmin("admin"), "default admin survives the round trip")

	ticket := second.GetTicket("TKT-1")
	require.NotNil(t, ticket)
	assert.Equal(t, domain.KindSingleRace, ticket.Kind())
	assert.InDelta(t, 120.0, ticket.CalculatePrice(), 1e-9)
	assert.Equal(t, "admin", ticket.CreatedBy())

	restored := second.GetOrder(order.ID())
	require.NotNil(t, restored)
	assert.Equal(t, domain.StatusConfirmed, restored.Status())
	assert.Equal(t, domain.PaymentCreditCard, restored.Payment())
	assert.InDelta(t, 120.0, restored.TotalAmount(), 1e-9)
	require.Equal(t, 1, restored.TicketCount())

	// Orders resolve against the restored registry, not private copies.
	assert.Same(t, ticket, restored.Tickets()[0])

	history := alice.Orders()
	require.Len(t, history, 1)
	assert.Same(t, restored, history[0])
}

func TestReopen_OrderSequenceContinues(t *testing.T) {
	dir := t.TempDir()
	first := openDir(t, dir)
	user, err := first.CreateUser("USR-1", "alice", "secret123", "alice@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", first.CreateOrder(user).ID())
	assert.Equal(t, "ORD-2", first.CreateOrder(user).ID())

	second := openDir(t, dir)
	assert.Equal(t, "ORD-3", second.CreateOrder(second.GetUser("alice")).ID())
}

func TestReopen_SequenceSurvivesMissingOrdersFile(t *testing.T) {
	dir := t.TempDir()
	first := openDir(t, dir)
	user, err := first.CreateUser("USR-1", "alice", "secret123", "alice@example.com", "")
	require.NoError(t, err)
	first.CreateOrder(user)
	first.CreateOrder(user)

	// A wiped orders snapshot must not let the sequence restart and
	// reissue ORD-1.
	require.NoError(t, os.Remove(filepath.Join(dir, "orders.cbor")))

	second := openDir(t, dir)
	assert.Nil(t, second.GetOrder("ORD-1"))
	assert.Equal(t, "ORD-3", second.CreateOrder(second.GetUser("alice")).ID())
}

func TestReopen_SequenceRecoversFromOrderIDs(t *testing.T) {
	dir := t.TempDir()
	first := openDir(t, dir)
	user, err := first.CreateUser("USR-1", "alice", "secret123", "alice@example.com", "")
	require.NoError(t, err)
	first.CreateOrder(user)
	first.CreateOrder(user)

	require.NoError(t, os.Remove(filepath.Join(dir, "orders.seq")))

	second := openDir(t, dir)
	assert.Equal(t, "ORD-3", second.CreateOrder(second.GetUser("alice")).ID())
}

func TestReopen_RelinksHistoryOldestFirst(t *testing.T) {
	dir := t.TempDir()
	first := openDir(t, dir)
	user, err := first.CreateUser("USR-1", "alice", "secret123", "alice@example.com", "")
	require.NoError(t, err)
	var ids []string
	for i := 0; i < 12; i++ {
		ids = append(ids, first.CreateOrder(user).ID())
	}

	second := openDir(t, dir)
	history := second.GetUser("alice").Orders()
	require.Len(t, history, 12)
	for i, o := range history {
		// Numeric ordering, not lexical: ORD-10 comes after ORD-9.
		assert.Equal(t, ids[i], o.ID())
		assert.Equal(t, fmt.Sprintf("ORD-%d", i+1), o.ID())
	}
}

func TestLoad_SkipsOwnWrites(t *testing.T) {
	store := newTestStore(t)
	_, err := store.CreateUser("USR-1", "alice", "secret123", "alice@example.com", "")
	require.NoError(t, err)

	before := store.GetUser("alice")
	assert.True(t, store.Load())
	assert.Same(t, before, store.GetUser("alice"),
		"reloading our own snapshot must not rebuild the object graph")
}

func TestLoad_PicksUpExternalChanges(t *testing.T) {
	dir := t.TempDir()
	writer := openDir(t, dir)
	reader := openDir(t, dir)

	require.Nil(t, reader.GetUser("bob"))

	_, err := writer.CreateUser("USR-2", "bob", "secret123", "bob@example.com", "")
	require.NoError(t, err)

	// Push the mtime clearly past what the reader recorded, so the
	// test does not depend on filesystem timestamp resolution.
	usersPath := filepath.Join(dir, "users.cbor")
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(usersPath, future, future))

	assert.True(t, reader.Load())
	bob := reader.GetUser("bob")
	require.NotNil(t, bob)
	assert.Equal(t, "USR-2", bob.ID())
}

func TestLoad_StaleAdminsFileDoesNotDropAdmins(t *testing.T) {
	dir := t.TempDir()
	store := openDir(t, dir)

	// Capture the admins snapshot from before boss exists.
	adminsPath := filepath.Join(dir, "admins.cbor")
	stale, err := os.ReadFile(adminsPath)
	require.NoError(t, err)

	_, err = store.CreateAdmin("ADM-2", "boss", "secret123", "boss@example.com", 2, "Operations", "")
	require.NoError(t, err)
	boss := store.GetAdmin("boss")
	require.NotNil(t, boss)

	// Restore the stale snapshot with a newer mtime so the poll reads
	// it. The live admin directory is authoritative and must win.
	require.NoError(t, os.WriteFile(adminsPath, stale, 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(adminsPath, future, future))

	assert.True(t, store.Load())
	assert.Same(t, boss, store.GetAdmin("boss"))
	assert.Same(t, boss, store.GetUser("boss"))
	assert.Len(t, store.AllAdmins(), 2)
}

func TestLoad_UsersReloadRebuildsAdminTable(t *testing.T) {
	dir := t.TempDir()
	store := openDir(t, dir)
	_, err := store.CreateAdmin("ADM-2", "boss", "secret123", "boss@example.com", 2, "Operations", "")
	require.NoError(t, err)

	// Another process updates boss's contact details.
	writer := openDir(t, dir)
	require.NoError(t, writer.UpdateUserContact("boss", "boss@hq.example.com", "555-9999"))

	usersPath := filepath.Join(dir, "users.cbor")
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(usersPath, future, future))

	assert.True(t, store.Load())

	// The admin directory was rebuilt against the fresh user table:
	// boss keeps admin standing and carries the external update.
	boss := store.GetAdmin("boss")
	require.NotNil(t, boss)
	assert.Equal(t, "boss@hq.example.com", boss.Email())
	assert.Equal(t, 2, boss.AdminLevel())
	assert.Same(t, boss, store.GetUser("boss"))
	require.NotNil(t, store.GetAdmin("admin"))
}

func TestReopen_SingleDefaultAdmin(t *testing.T) {
	dir := t.TempDir()
	openDir(t, dir)
	second := openDir(t, dir)

	assert.Len(t, second.AllAdmins(), 1)

	data, err := os.ReadFile(filepath.Join(dir, "booking_system.log"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "Created default admin account"))
}

func TestAuditLog_LineFormat(t *testing.T) {
	dir := t.TempDir()
	store := openDir(t, dir)
	_, err := store.CreateUser("USR-1", "alice", "secret123", "alice@example.com", "")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "booking_system.log"))
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "Created user: alice")
	assert.Contains(t, content, "All data saved successfully")

	linePattern := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] .+$`)
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		assert.Regexp(t, linePattern, line)
	}
}

func TestOpen_SeedCatalog(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(Config{DataDir: dir, SeedCatalog: true})
	require.NoError(t, err)

	races := store.Races()
	require.Len(t, races, 5)
	monaco := store.Race("R001")
	require.NotNil(t, monaco)
	assert.Equal(t, "Monaco Grand Prix", monaco.Name)
	assert.Equal(t, domain.CategoryPremium, monaco.Category)

	seasons := store.Seasons()
	require.Len(t, seasons, 1)
	seasonID := fmt.Sprintf("S%d", time.Now().Year())
	season := store.Season(seasonID)
	require.NotNil(t, season)
	assert.Equal(t, []string{"R001", "R002", "R003", "R004", "R005"}, season.RaceIDs)
	assert.Len(t, season.RaceNames, 5)

	// The catalog persists, and seeding never overwrites loaded data.
	reopened, err := Open(Config{DataDir: dir, SeedCatalog: true})
	require.NoError(t, err)
	assert.Len(t, reopened.Races(), 5)
	assert.Equal(t, "Monaco Grand Prix", reopened.Race("R001").Name)
}
