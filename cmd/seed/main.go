// Package main seeds a StudyTrack database with demo data for one identity.
//
// It writes a few goals and resources and a run of study sessions ending
// today, so stats and streaks have something to show.
//
// Usage:
//
//	DB_PATH=~/StudyTrack/data/db go run ./cmd/seed -identity alice
//	DB_PATH=~/StudyTrack/data/db go run ./cmd/seed -identity alice -days 14
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/studytrack/studytrack-server/internal/domain"
	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
	"github.com/studytrack/studytrack-server/internal/service"
	"github.com/studytrack/studytrack-server/internal/store"
	"github.com/studytrack/studytrack-server/internal/store/badgerdb"
	"github.com/studytrack/studytrack-server/internal/validation"
)

var (
	identity = flag.String("identity", "", "Identity to seed (required)")
	days     = flag.Int("days", 7, "Number of consecutive days of sessions ending today")
)

var subjects = []string{"Math", "History", "Go", "Spanish", "Physics"}

func main() {
	flag.Parse()

	if *identity == "" {
		flag.Usage()
		os.Exit(2)
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/StudyTrack/data/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.DiscardHandler)
	st, err := badgerdb.New(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	locks := service.NewPartitionLocks()
	v := validation.New()
	events := store.NewNoopEmitter()
	roles := service.NewRoleService(st, locks, events, logger)
	gate := roles.Gate()

	goals := service.NewGoalService(st, gate, locks, nil, events, v, logger)
	sessions := service.NewStudySessionService(st, gate, locks, events, v, logger)
	resources := service.NewResourceService(st, gate, locks, nil, events, v, logger)

	seedGoals(ctx, goals)
	seedResources(ctx, resources)
	seedSessions(ctx, sessions)

	fmt.Println("Done. The search index is rebuilt from the store when the server starts.")
}

func seedGoals(ctx context.Context, svc *service.GoalService) {
	inputs := []service.GoalInput{
		{Title: "Finish calculus unit", Category: "Math", Priority: domain.PriorityHigh},
		{Title: "Read about the Roman republic", Category: "History"},
		{Title: "Build a CLI in Go", Category: "Programming", Priority: domain.PriorityLow},
	}

	for _, in := range inputs {
		if _, err := svc.AddGoal(ctx, *identity, in); err != nil {
			if skipped(err) {
				fmt.Printf("  goal %q exists, skipping\n", in.Title)
				continue
			}
			log.Fatalf("Failed to add goal %q: %v", in.Title, err)
		}
		fmt.Printf("  added goal %q\n", in.Title)
	}
}

func seedResources(ctx context.Context, svc *service.ResourceService) {
	inputs := []service.ResourceInput{
		{Title: "A Tour of Go", URL: "https://go.dev/tour", Category: "Programming"},
		{Title: "Khan Academy Calculus", URL: "https://www.khanacademy.org/math/calculus-1", Category: "Math"},
	}

	for _, in := range inputs {
		if _, err := svc.AddResource(ctx, *identity, in); err != nil {
			if skipped(err) {
				fmt.Printf("  resource %q exists, skipping\n", in.Title)
				continue
			}
			log.Fatalf("Failed to add resource %q: %v", in.Title, err)
		}
		fmt.Printf("  added resource %q\n", in.Title)
	}
}

func seedSessions(ctx context.Context, svc *service.StudySessionService) {
	today := time.Now()
	for d := range *days {
		date := today.AddDate(0, 0, -d).Format(domain.DateLayout)
		in := service.StudySessionInput{
			Subject:         subjects[rand.IntN(len(subjects))],
			Date:            date,
			DurationMinutes: 15 + rand.IntN(90),
		}
		if _, err := svc.AddStudySession(ctx, *identity, in); err != nil {
			log.Fatalf("Failed to add session for %s: %v", date, err)
		}
	}
	fmt.Printf("  added %d sessions\n", *days)
}

func skipped(err error) bool {
	var domainErr *domainerrors.Error
	return errors.As(err, &domainErr) && domainErr.Code == domainerrors.CodeDuplicateKey
}
