// demo walks the booking flow end to end against a real data
// directory: accounts, tickets, an order through payment, confirmation
// and an attempted cancellation. Re-running it picks the same accounts
// and tickets back up from the snapshot files.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"grandprix/internal/booking"
	"grandprix/internal/domain"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var dataDir string
	var logFile string

	flagSet := pflag.NewFlagSet("demo", pflag.ContinueOnError)
	flagSet.StringVar(&dataDir, "data-dir", "./data", "directory holding the snapshot files")
	flagSet.StringVar(&logFile, "log-file", "", "audit log path (default: <data-dir>/booking_system.log)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}

	system, err := booking.Open(booking.Config{
		Name:         "Grand Prix Experience",
		Version:      "1.0",
		DataDir:      dataDir,
		AuditLogFile: logFile,
		SeedCatalog:  true,
	})
	if err != nil {
		return err
	}

	banner("GRAND PRIX EXPERIENCE TICKET BOOKING SYSTEM DEMO")

	// 1. User creation or retrieval
	section("1. CREATING/RETRIEVING USERS")

	user := system.GetUser("test_user")
	if user == nil {
		user, err = system.CreateUser("USR-TEST", "test_user", "password123", "test@example.com", "555-1234")
		if err != nil {
			return err
		}
		fmt.Printf("Regular User Created: %s\n", user.Summary())
	} else {
		fmt.Printf("Regular User Retrieved: %s\n", user.Summary())
	}

	admin := system.GetAdmin("test_admin")
	if admin == nil {
		admin, err = system.CreateAdmin("ADM-TEST", "test_admin", "admin123", "admin@example.com", 2, "Operations", "555-5678")
		if err != nil {
			return err
		}
		fmt.Printf("Admin User Created: %s\n", admin.Summary())
	} else {
		fmt.Printf("Admin User Retrieved: %s\n", admin.Summary())
	}
	fmt.Println()

	// 2. Ticket creation
	section("2. CREATING/RETRIEVING TICKETS")

	singleTicket := system.GetTicket("TKT-TEST-1")
	if singleTicket == nil {
		singleTicket, err = admin.MintTicket(domain.TicketSpec{
			Kind:         domain.KindSingleRace,
			ID:           "TKT-TEST-1",
			BasePrice:    200.0,
			EventDate:    domain.Date(2025, 6, 15),
			VenueSection: "Main Grandstand",
			RaceName:     "Monaco Grand Prix",
			RaceCategory: domain.CategoryPremium,
		})
		if err != nil {
			return err
		}
		if err := system.RegisterTicket(singleTicket); err != nil {
			return err
		}
		fmt.Printf("Single Race Ticket Created: %s\n", singleTicket.Summary())
	} else {
		fmt.Printf("Single Race Ticket Retrieved: %s\n", singleTicket.Summary())
	}
	fmt.Printf("Base Price: $%.2f\n", singleTicket.BasePrice())
	fmt.Printf("Calculated Price: $%.2f\n\n", singleTicket.CalculatePrice())

	seasonTicket := system.GetTicket("TKT-TEST-2")
	if seasonTicket == nil {
		seasonTicket, err = admin.MintTicket(domain.TicketSpec{
			Kind:         domain.KindSeason,
			ID:           "TKT-TEST-2",
			BasePrice:    1000.0,
			EventDate:    domain.Date(2025, 1, 1),
			VenueSection: "VIP Lounge",
			SeasonYear:   2025,
			IncludedRaces: []string{
				"Monaco", "Silverstone", "Monza", "Singapore", "Abu Dhabi",
			},
			RaceDates: []time.Time{
				domain.Date(2025, 5, 25),
				domain.Date(2025, 7, 7),
				domain.Date(2025, 9, 1),
				domain.Date(2025, 9, 21),
				domain.Date(2025, 12, 1),
			},
		})
		if err != nil {
			return err
		}
		if err := system.RegisterTicket(seasonTicket); err != nil {
			return err
		}
		fmt.Printf("Season Ticket Created: %s\n", seasonTicket.Summary())
	} else {
		fmt.Printf("Season Ticket Retrieved: %s\n", seasonTicket.Summary())
	}
	fmt.Printf("Base Price: $%.2f\n", seasonTicket.BasePrice())
	fmt.Printf("Calculated Price (with discount): $%.2f\n\n", seasonTicket.CalculatePrice())

	// 3. Order processing
	section("3. PROCESSING ORDERS")

	order := system.CreateOrder(user)
	fmt.Printf("New Order Created: %s\n", order.Summary())

	if err := order.AddTicket(singleTicket); err != nil {
		return err
	}
	fmt.Println("Added Single Race Ticket to order.")
	fmt.Printf("Order Status: %s\n", order.Summary())
	if err := system.UpdateOrder(order); err != nil {
		return err
	}

	if err := order.AddTicket(seasonTicket); err != nil {
		return err
	}
	fmt.Println("Added Season Ticket to order.")
	fmt.Printf("Order Status: %s\n", order.Summary())
	if err := system.UpdateOrder(order); err != nil {
		return err
	}
	fmt.Println()

	fmt.Println("Setting payment method to Credit Card...")
	if err := order.SetPaymentMethod(domain.PaymentCreditCard); err != nil {
		return err
	}

	fmt.Println("Attempting to confirm order...")
	if order.Confirm() {
		fmt.Println("SUCCESS: Order confirmed!")
		fmt.Printf("Final Order Status: %s\n", order.Summary())
		if err := system.UpdateOrder(order); err != nil {
			return err
		}
	} else {
		fmt.Println("ERROR: Could not confirm order.")
	}
	fmt.Println()

	fmt.Println("Attempting to cancel confirmed order...")
	if order.Cancel() {
		fmt.Println("SUCCESS: Order cancelled.")
		if err := system.UpdateOrder(order); err != nil {
			return err
		}
	} else {
		fmt.Println("NOTICE: Could not cancel order (already confirmed).")
	}
	fmt.Println()

	// 4. System status and data persistence
	section("4. SYSTEM STATUS AND DATA PERSISTENCE")

	fmt.Printf("User %s has %d orders in their history.\n", user.Username(), len(user.Orders()))
	fmt.Printf("System Status: %s\n", system.Summary())

	fmt.Println("\nAll data has been saved to the following files:")
	for _, name := range []string{"users.cbor", "admins.cbor", "tickets.cbor", "orders.cbor"} {
		fmt.Printf("- %s\n", filepath.Join(dataDir, name))
	}
	if logFile == "" {
		logFile = filepath.Join(dataDir, "booking_system.log")
	}
	fmt.Printf("- %s\n", logFile)

	fmt.Println("\nYou can restart the application and the data will be loaded from these files.")
	banner("DEMONSTRATION COMPLETED SUCCESSFULLY")
	return nil
}

func banner(title string) {
	line := strings.Repeat("=", 80)
	fmt.Println("\n" + line)
	fmt.Println(title)
	fmt.Println(line)
}

func section(title string) {
	line := strings.Repeat("-", 80)
	fmt.Println(line)
	fmt.Println(title)
	fmt.Println(line)
}
