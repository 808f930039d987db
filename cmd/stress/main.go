package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/thinptr"
	"github.com/wippyai/thinptr/arena"
	"github.com/wippyai/thinptr/handles"
	"github.com/wippyai/thinptr/track"
)

type config struct {
	workers int
	clones  int
	rounds  int
	verbose bool
}

func main() {
	var (
		workers     = flag.Int("workers", 4, "concurrent cloning goroutines")
		clones      = flag.Int("clones", 1000, "clones per goroutine per round")
		rounds      = flag.Int("rounds", 100, "rounds to run")
		verbose     = flag.Bool("v", false, "log every handle event")
		interactive = flag.Bool("i", false, "interactive mode with TUI")
	)
	flag.Parse()

	cfg := config{workers: *workers, clones: *clones, rounds: *rounds, verbose: *verbose}

	if *interactive {
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	reg := track.NewRegistry()
	track.Enable(reg)
	defer track.Disable()

	if cfg.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		defer logger.Sync()
		reg.Subscribe(track.NewLogObserver(logger))
	}

	fmt.Printf("Stress: %d workers x %d clones x %d rounds\n", cfg.workers, cfg.clones, cfg.rounds)

	for r := 0; r < cfg.rounds; r++ {
		if err := round(cfg); err != nil {
			return err
		}
	}

	fmt.Printf("\nRounds completed: %d\n", cfg.rounds)
	fmt.Printf("Live units: %d\n", reg.Live())
	if s, ok := arena.Default.(*arena.Slab); ok {
		st := s.Stats()
		fmt.Printf("Arena: allocated=%d free=%d mapped=%d\n", st.Allocated, st.Free, st.Mapped)
	}
	if err := reg.Err(); err != nil {
		return err
	}
	if leaks := reg.Leaks(); len(leaks) > 0 {
		return fmt.Errorf("%d addresses leaked", len(leaks))
	}
	fmt.Println("OK")
	return nil
}

// round wraps an atomically counted handle over int64(42), races clones and
// releases of it across the workers, then releases the original unit.
func round(cfg config) error {
	t := thinptr.New(handles.NewAtomic(int64(42)))

	errs := make(chan error, cfg.workers)
	var wg sync.WaitGroup
	for w := 0; w < cfg.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < cfg.clones; i++ {
				c := thinptr.Clone(&t)
				if v := thinptr.Value[int64](&c); *v != 42 {
					errs <- fmt.Errorf("read %d through cloned unit, want 42", *v)
					c.Release()
					return
				}
				c.Release()
			}
		}()
	}
	wg.Wait()
	t.Release()

	select {
	case err := <-errs:
		return err
	default:
		return nil
	}
}
