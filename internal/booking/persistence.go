package booking

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"grandprix/internal/domain"
)

// Snapshot file names inside the data directory. Load walks them in
// this order so fresh tickets are in place before orders re-link
// against them.
const (
	usersFile    = "users.cbor"
	adminsFile   = "admins.cbor"
	ticketsFile  = "tickets.cbor"
	ordersFile   = "orders.cbor"
	racesFile    = "races.cbor"
	seasonsFile  = "seasons.cbor"
	orderSeqFile = "orders.seq"
)

var snapshotFiles = []string{usersFile, adminsFile, ticketsFile, ordersFile, racesFile, seasonsFile}

// Save snapshots every collection to its file, replacing each file
// atomically. Failures are audited and reported as false; the
// in-memory state is unaffected either way.
func (s *Store) Save() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() bool {
	users := make(map[string]domain.UserRecord, len(s.users))
	for username, u := range s.users {
		users[username] = domain.SnapshotUser(u)
	}
	admins := make(map[string]domain.UserRecord, len(s.admins))
	for username, u := range s.admins {
		admins[username] = domain.SnapshotUser(u)
	}
	tickets := make(map[string]domain.TicketRecord, len(s.tickets))
	for id, t := range s.tickets {
		tickets[id] = domain.SnapshotTicket(t)
	}
	orders := make(map[string]domain.OrderRecord, len(s.orders))
	for id, o := range s.orders {
		orders[id] = domain.SnapshotOrder(o)
	}

	files := []struct {
		name string
		data interface{}
	}{
		{usersFile, users},
		{adminsFile, admins},
		{ticketsFile, tickets},
		{ordersFile, orders},
		{racesFile, s.races},
		{seasonsFile, s.seasons},
	}
	for _, f := range files {
		if err := s.writeSnapshotLocked(f.name, f.data); err != nil {
			s.audit("Error saving data: %v", err)
			return false
		}
	}
	if err := writeFileAtomic(filepath.Join(s.dataDir, orderSeqFile),
		[]byte(strconv.FormatUint(s.orderSeq, 10)+"\n")); err != nil {
		s.audit("Error saving data: %v", err)
		return false
	}

	s.audit("All data saved successfully")
	return true
}

func (s *Store) writeSnapshotLocked(name string, v interface{}) error {
	data, err := encodeSnapshot(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	path := filepath.Join(s.dataDir, name)
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	// Record our own write so polling does not reload it.
	if fi, err := os.Stat(path); err == nil {
		s.mtimes[name] = fi.ModTime()
	}
	return nil
}

// writeFileAtomic writes to a temp file in the target directory and
// renames it into place, so readers never observe a torn file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Load picks up snapshot files that changed on disk since they were
// last read, then guarantees the default admin account. Unchanged
// files are skipped by modification time. Errors are audited and
// reported as false; files already applied stay applied.
func (s *Store) Load() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() bool {
	ok := true
	if err := s.refreshLocked(); err != nil {
		s.audit("Error loading data: %v", err)
		ok = false
	}
	// Raise the sequence even when the orders snapshot itself is
	// missing or unchanged; the .seq file alone must keep IDs unique.
	s.loadOrderSeqLocked()
	s.ensureDefaultAdminLocked()
	return ok
}

func (s *Store) refreshLocked() error {
	for _, name := range snapshotFiles {
		path := filepath.Join(s.dataDir, name)
		fi, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("checking %s: %w", name, err)
		}
		if !fi.ModTime().After(s.mtimes[name]) {
			continue
		}

		s.audit("File %s has been modified, reloading...", name)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		n, err := s.applySnapshotLocked(name, data)
		if err != nil {
			return fmt.Errorf("loading %s: %w", name, err)
		}
		s.mtimes[name] = fi.ModTime()
		s.audit("Loaded %d items from %s", n, name)
	}
	return nil
}

func (s *Store) applySnapshotLocked(name string, data []byte) (int, error) {
	switch name {
	case usersFile:
		var records map[string]domain.UserRecord
		if err := decodeSnapshot(data, &records); err != nil {
			return 0, err
		}
		// Replace the user directory, then rebuild the admin directory
		// so it aliases the fresh user values. Usernames that lost
		// their account or their admin capability drop out.
		adminNames := make([]string, 0, len(s.admins))
		for username := range s.admins {
			adminNames = append(adminNames, username)
		}
		s.users = make(map[string]*domain.User, len(records))
		for username, r := range records {
			s.users[username] = domain.UserFromRecord(r)
		}
		s.admins = make(map[string]*domain.User)
		for _, username := range adminNames {
			if u, ok := s.users[username]; ok && u.IsAdmin() {
				s.admins[username] = u
			}
		}
		s.relinkOrdersLocked()
		return len(records), nil

	case adminsFile:
		var records map[string]domain.UserRecord
		if err := decodeSnapshot(data, &records); err != nil {
			return 0, err
		}
		// The admins file only matters when the admin directory is
		// empty; otherwise it was already rebuilt from the users
		// snapshot, which is authoritative.
		if len(s.admins) == 0 {
			for username, r := range records {
				if u, ok := s.users[username]; ok {
					s.admins[username] = u
					continue
				}
				s.admins[username] = domain.UserFromRecord(r)
			}
		}
		return len(records), nil

	case ticketsFile:
		var records map[string]domain.TicketRecord
		if err := decodeSnapshot(data, &records); err != nil {
			return 0, err
		}
		tickets := make(map[string]domain.Ticket, len(records))
		for id, r := range records {
			t, err := domain.TicketFromRecord(r)
			if err != nil {
				return 0, err
			}
			tickets[id] = t
		}
		s.tickets = tickets
		return len(records), nil

	case ordersFile:
		var records map[string]domain.OrderRecord
		if err := decodeSnapshot(data, &records); err != nil {
			return 0, err
		}
		orders := make(map[string]*domain.Order, len(records))
		for id, r := range records {
			o, err := domain.OrderFromRecord(r, func(ticketID string) (domain.Ticket, bool) {
				t, ok := s.tickets[ticketID]
				return t, ok
			})
			if err != nil {
				return 0, err
			}
			orders[id] = o
		}
		s.orders = orders
		s.relinkOrdersLocked()
		return len(records), nil

	case racesFile:
		var records map[string]*domain.Race
		if err := decodeSnapshot(data, &records); err != nil {
			return 0, err
		}
		if records == nil {
			records = make(map[string]*domain.Race)
		}
		s.races = records
		return len(records), nil

	case seasonsFile:
		var records map[string]*domain.Season
		if err := decodeSnapshot(data, &records); err != nil {
			return 0, err
		}
		if records == nil {
			records = make(map[string]*domain.Season)
		}
		s.seasons = records
		return len(records), nil
	}
	return 0, fmt.Errorf("unknown snapshot file %q", name)
}

// relinkOrdersLocked rebuilds every user's order history from the
// order table, oldest order first. The order table is authoritative
// for ownership; orders with an unknown owner stay in the table but
// appear in no history.
func (s *Store) relinkOrdersLocked() {
	byUser := make(map[string][]*domain.Order)
	for _, id := range sortedOrderIDs(s.orders) {
		o := s.orders[id]
		byUser[o.UserID()] = append(byUser[o.UserID()], o)
	}
	for _, u := range s.users {
		u.RelinkOrders(byUser[u.ID()])
	}
}

// sortedOrderIDs sorts by the numeric suffix of ORD-<n> IDs so
// creation order is preserved; anything else sorts lexically after.
func sortedOrderIDs(orders map[string]*domain.Order) []string {
	ids := make([]string, 0, len(orders))
	for id := range orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ni, iok := orderSeqOf(ids[i])
		nj, jok := orderSeqOf(ids[j])
		if iok && jok && ni != nj {
			return ni < nj
		}
		if iok != jok {
			return iok
		}
		return ids[i] < ids[j]
	})
	return ids
}

func orderSeqOf(orderID string) (uint64, bool) {
	rest, ok := strings.CutPrefix(orderID, "ORD-")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// loadOrderSeqLocked raises the order sequence to the highest value
// seen in the sequence file or in the loaded order IDs. It never
// lowers it: a stale file must not reissue a live ID.
func (s *Store) loadOrderSeqLocked() {
	var max uint64
	if data, err := os.ReadFile(filepath.Join(s.dataDir, orderSeqFile)); err == nil {
		if n, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64); err == nil {
			max = n
		}
	}
	for id := range s.orders {
		if n, ok := orderSeqOf(id); ok && n > max {
			max = n
		}
	}
	if max > s.orderSeq {
		s.orderSeq = max
	}
}

// ensureDefaultAdminLocked creates the default admin when no admin
// account survived loading and the username is free.
func (s *Store) ensureDefaultAdminLocked() {
	if len(s.admins) > 0 {
		return
	}
	if _, taken := s.users[defaultAdminUsername]; taken {
		return
	}
	if _, err := s.createAdminLocked(defaultAdminID, defaultAdminUsername, defaultAdminPassword,
		defaultAdminEmail, defaultAdminLevel, defaultAdminDepartment, ""); err != nil {
		s.log.Error("failed to create default admin", "error", err)
		return
	}
	s.audit("Created default admin account")
}
