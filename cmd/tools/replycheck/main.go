// Command replycheck resolves a single message against a persona and
// prints the reply, for eyeballing the canned response tables and the
// safety protocol without starting the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gospia/gospia/backend/internal/model/persona"
	"github.com/gospia/gospia/backend/internal/service/resolver"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	personaID := flag.String("persona", "elder", "persona id to answer as")
	text := flag.String("text", "", "user message to resolve")
	delay := flag.Duration("delay", 0, "artificial resolver latency")
	flag.Parse()

	if *text == "" {
		flag.Usage()
		log.Fatal("provide a message with -text")
	}

	catalog, err := persona.NewMemoryCatalog(persona.Seed())
	if err != nil {
		log.Fatalf("invalid persona catalog: %v", err)
	}

	p, ok := catalog.FindByID(*personaID)
	if !ok {
		log.Printf("unknown persona %q, using catalog default", *personaID)
		p = catalog.Default()
	}

	svc := resolver.NewService(*delay)

	ctx, cancel := context.WithTimeout(context.Background(), *delay+30*time.Second)
	defer cancel()

	started := time.Now()
	reply, err := svc.Resolve(ctx, *text, p)
	if err != nil {
		log.Fatalf("resolution failed: %v", err)
	}

	log.Printf("resolved in %s as %s (%s)", time.Since(started).Round(time.Millisecond), p.Name, p.ID)
	fmt.Println()
	fmt.Println(reply)
}
