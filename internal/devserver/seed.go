package devserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/service"
)

var demoSubjects = []string{
	"Card declined at merchant",
	"Duplicate charge on statement",
	"Unable to reset PIN",
	"Upgrade application stuck",
	"Late fee applied in error",
	"Branch closed during posted hours",
	"Rewards points missing",
	"Address change not reflected",
}

var demoNames = []string{
	"Aarav Shah", "Priya Nair", "Rohan Gupta", "Ananya Iyer", "Vikram Rao",
	"Meera Pillai", "Kabir Singh", "Isha Menon", "Arjun Das", "Sneha Kulkarni",
	"Dev Malhotra", "Kavya Reddy",
}

// Seed fills an empty store with demo grievances: enough customer records to
// span two pages plus a handful of guests. A non-empty store is left alone.
func Seed(ctx context.Context, store service.GrievanceStore) (int, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Debug("Store already has grievances, skipping seed", "count", n)
		return 0, nil
	}

	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	created := 0
	add := func(userType model.UserType, i int) error {
		name := demoNames[i%len(demoNames)]
		g := &model.Grievance{
			UserType:  userType,
			Name:      name,
			Email:     fmt.Sprintf("user%d@example.com", created+1),
			Phone:     fmt.Sprintf("98450%05d", created+1),
			Subject:   demoSubjects[i%len(demoSubjects)],
			Message:   "Raised via " + string(userType) + " support form.",
			Timestamp: base.Add(time.Duration(created) * 3 * time.Hour).Format(time.RFC3339),
		}
		if err := store.CreateGrievance(ctx, g); err != nil {
			return fmt.Errorf("failed to seed grievance: %w", err)
		}
		created++
		return nil
	}

	for i := 0; i < 14; i++ {
		if err := add(model.UserTypeCustomer, i); err != nil {
			return created, err
		}
	}
	for i := 0; i < 5; i++ {
		if err := add(model.UserTypeGuest, i+3); err != nil {
			return created, err
		}
	}

	slog.Info("Seeded demo grievances", "count", created)
	return created, nil
}
