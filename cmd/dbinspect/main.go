// Package main prints a summary of a StudyTrack Badger database.
//
// The server must be stopped first: Badger holds a directory lock.
//
// Usage:
//
//	DB_PATH=~/StudyTrack/data/db go run ./cmd/dbinspect
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/studytrack/studytrack-server/internal/store/badgerdb"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/StudyTrack/data/db")
	}

	st, err := badgerdb.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	ctx := context.Background()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	roles, err := st.ListRoles(ctx)
	if err != nil {
		log.Fatalf("Failed to list roles: %v", err)
	}
	fmt.Printf("Role assignments: %d\n", len(roles))
	for _, r := range roles {
		fmt.Printf("  %-30s %s\n", r.Identity, r.Role)
	}
	fmt.Println()

	identities, err := st.ListIdentities(ctx)
	if err != nil {
		log.Fatalf("Failed to list identities: %v", err)
	}
	fmt.Printf("Identities with goals or resources: %d\n", len(identities))

	var totalGoals, totalSessions, totalResources, totalMinutes int
	for _, identity := range identities {
		goals, err := st.ListGoals(ctx, identity)
		if err != nil {
			log.Fatalf("Failed to list goals for %s: %v", identity, err)
		}
		sessions, err := st.ListStudySessions(ctx, identity)
		if err != nil {
			log.Fatalf("Failed to list sessions for %s: %v", identity, err)
		}
		resources, err := st.ListResources(ctx, identity)
		if err != nil {
			log.Fatalf("Failed to list resources for %s: %v", identity, err)
		}

		completed := 0
		for _, g := range goals {
			if g.Completed {
				completed++
			}
		}
		minutes := 0
		for _, s := range sessions {
			minutes += s.DurationMinutes
		}

		fmt.Printf("  %-30s goals=%d (completed %d) sessions=%d minutes=%d resources=%d\n",
			identity, len(goals), completed, len(sessions), minutes, len(resources))

		totalGoals += len(goals)
		totalSessions += len(sessions)
		totalResources += len(resources)
		totalMinutes += minutes
	}

	fmt.Println()
	fmt.Println("=== Totals ===")
	fmt.Printf("Goals:     %d\n", totalGoals)
	fmt.Printf("Sessions:  %d (%d minutes)\n", totalSessions, totalMinutes)
	fmt.Printf("Resources: %d\n", totalResources)
}
