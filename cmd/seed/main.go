package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"grandprix/internal/booking"
	"grandprix/internal/domain"
	"grandprix/internal/shared/config"
	"grandprix/internal/shared/utils/ref"
)

// Seeder provisions a data directory with demo accounts, tickets and
// orders so the API has something to serve on a fresh checkout.
type Seeder struct {
	store *booking.Store
}

func main() {
	fmt.Println("🌱 Starting Grand Prix data seeder...")

	// Load configuration
	cfg := config.Load()

	// Start from a clean slate so reseeding is deterministic.
	fmt.Println("\n🧹 Cleaning data directory...")
	if err := cleanDataDir(cfg.Snapshot.DataDir); err != nil {
		log.Fatalf("Failed to clean data directory: %v", err)
	}
	fmt.Println("✅ Data directory cleaned")

	// Opening the store seeds the race and season catalog and creates
	// the default admin account.
	store, err := booking.Open(booking.Config{
		Name:         cfg.System.Name,
		Version:      cfg.System.Version,
		DataDir:      cfg.Snapshot.DataDir,
		AuditLogFile: cfg.Snapshot.AuditLogFile,
		SeedCatalog:  true,
	})
	if err != nil {
		log.Fatalf("Failed to open booking store: %v", err)
	}

	seeder := &Seeder{store: store}

	fmt.Println("\n🌱 Seeding data...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed data: %v", err)
	}
	fmt.Println("✅ Data seeded successfully")

	fmt.Printf("\n🎉 Seeding completed! %s\n", store.Summary())
}

// cleanDataDir removes the snapshot files, the sequence file and the
// audit log. The directory itself stays.
func cleanDataDir(dataDir string) error {
	files := []string{
		"users.cbor",
		"admins.cbor",
		"tickets.cbor",
		"orders.cbor",
		"races.cbor",
		"seasons.cbor",
		"orders.seq",
		"booking_system.log",
	}
	for _, name := range files {
		path := filepath.Join(dataDir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		fmt.Printf("  Removing file: %s\n", name)
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	customers, err := s.SeedCustomers()
	if err != nil {
		return fmt.Errorf("failed to seed customers: %w", err)
	}

	tickets, err := s.SeedTickets()
	if err != nil {
		return fmt.Errorf("failed to seed tickets: %w", err)
	}

	if err := s.SeedOrders(customers, tickets); err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}

	return nil
}

// SeedCustomers creates two customer accounts. The admin account is
// already there: the store guarantees one on every open.
func (s *Seeder) SeedCustomers() ([]*domain.User, error) {
	fmt.Println("  👤 Seeding customers...")

	customersData := []struct {
		username string
		email    string
		phone    string
	}{
		{"alice", "alice@example.com", "555-0101"},
		{"bob", "bob@example.com", "555-0102"},
	}

	out := make([]*domain.User, 0, len(customersData))
	for _, data := range customersData {
		user, err := s.store.CreateUser(ref.New("USR"), data.username, "qwerty", data.email, data.phone)
		if err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", data.username, err)
		}
		fmt.Printf("    Created %s (%s)\n", user.Username(), user.ID())
		out = append(out, user)
	}

	return out, nil
}

// SeedTickets mints one grandstand ticket per catalog race plus a
// season ticket, all signed by the default admin.
func (s *Seeder) SeedTickets() ([]domain.Ticket, error) {
	fmt.Println("  🎫 Seeding tickets...")

	admin := s.store.GetAdmin("admin")
	if admin == nil {
		return nil, fmt.Errorf("default admin account missing")
	}

	var out []domain.Ticket
	for _, race := range s.store.Races() {
		ticket, err := admin.MintTicket(domain.TicketSpec{
			Kind:         domain.KindSingleRace,
			ID:           ref.New("TKT"),
			BasePrice:    race.Price,
			EventDate:    race.Date,
			VenueSection: "Main Grandstand",
			RaceName:     race.Name,
			RaceCategory: race.Category,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to mint ticket for %s: %w", race.Name, err)
		}
		if err := s.store.RegisterTicket(ticket); err != nil {
			return nil, err
		}
		fmt.Printf("    Minted %s (%s)\n", ticket.ID(), race.Name)
		out = append(out, ticket)
	}

	for _, season := range s.store.Seasons() {
		ticket, err := admin.MintTicket(domain.TicketSpec{
			Kind:          domain.KindSeason,
			ID:            ref.New("TKT"),
			BasePrice:     season.Price,
			EventDate:     season.StartDate,
			VenueSection:  "VIP Lounge",
			SeasonYear:    season.Year,
			IncludedRaces: season.RaceNames,
			RaceDates:     season.RaceDates,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to mint season ticket for %s: %w", season.Name, err)
		}
		if err := s.store.RegisterTicket(ticket); err != nil {
			return nil, err
		}
		fmt.Printf("    Minted %s (%s)\n", ticket.ID(), season.Name)
		out = append(out, ticket)
	}

	return out, nil
}

// SeedOrders gives the first customer a confirmed order and the second
// a pending one, so both lifecycle states show up in the API.
func (s *Seeder) SeedOrders(customers []*domain.User, tickets []domain.Ticket) error {
	fmt.Println("  🧾 Seeding orders...")

	if len(customers) < 2 || len(tickets) < 2 {
		return fmt.Errorf("not enough seeded customers or tickets")
	}

	confirmed := s.store.CreateOrder(customers[0])
	if err := s.store.AddTicketToOrder(confirmed.ID(), tickets[0].ID()); err != nil {
		return err
	}
	if err := s.store.SetOrderPayment(confirmed.ID(), domain.PaymentCreditCard); err != nil {
		return err
	}
	ok, err := s.store.ConfirmOrder(confirmed.ID())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("seeded order %s refused confirmation", confirmed.ID())
	}
	fmt.Printf("    Confirmed %s for %s\n", confirmed.ID(), customers[0].Username())

	pending := s.store.CreateOrder(customers[1])
	if err := s.store.AddTicketToOrder(pending.ID(), tickets[1].ID()); err != nil {
		return err
	}
	fmt.Printf("    Opened %s for %s\n", pending.ID(), customers[1].Username())

	return nil
}
