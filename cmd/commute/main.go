package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"commute-tracker/internal/adapters/repositories"
	"commute-tracker/internal/adapters/traveltime"
	"commute-tracker/internal/api"
	"commute-tracker/internal/config"
	"commute-tracker/internal/domain"
	"commute-tracker/internal/platform/db"
	"commute-tracker/internal/ports"
	"commute-tracker/internal/services"
)

// main is the application composition root. It loads configuration,
// wires concrete adapters (SQLite/Postgres, Google Directions) behind
// ports and dispatches to the requested command.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	if cfg.APIKey == "" {
		fmt.Fprintln(os.Stderr, "warning: MAPS_API_KEY is not set; poll, monitor and current will fail")
	}

	rootCmd := &cobra.Command{
		Use:           "commute",
		Short:         "Track commute times and find optimal departure times",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(addCmd(cfg))
	rootCmd.AddCommand(listCmd(cfg))
	rootCmd.AddCommand(deleteCmd(cfg))
	rootCmd.AddCommand(pollCmd(cfg))
	rootCmd.AddCommand(monitorCmd(cfg))
	rootCmd.AddCommand(currentCmd(cfg))
	rootCmd.AddCommand(statsCmd(cfg))
	rootCmd.AddCommand(recommendCmd(cfg))
	rootCmd.AddCommand(serveCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// store bundles the opened database with its repository ports.
type store struct {
	db        *sql.DB
	addresses ports.AddressRepository
	samples   ports.SampleRepository
}

func (s *store) Close() error { return s.db.Close() }

// openStore selects the backend: Postgres when DATABASE_URL is set,
// the local SQLite file otherwise. The schema is initialized on open so
// every command works against a fresh database.
func openStore(cfg config.Config) (*store, error) {
	if cfg.DatabaseURL != "" {
		pg, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := repositories.InitPostgresSchema(pg); err != nil {
			pg.Close()
			return nil, err
		}
		return &store{
			db:        pg,
			addresses: repositories.NewPostgresAddressRepository(pg),
			samples:   repositories.NewPostgresSampleRepository(pg),
		}, nil
	}

	lite, err := db.OpenSqlite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := repositories.InitSchema(lite); err != nil {
		lite.Close()
		return nil, err
	}
	return &store{
		db:        lite,
		addresses: repositories.NewSqliteAddressRepository(lite),
		samples:   repositories.NewSqliteSampleRepository(lite),
	}, nil
}

func parseAddressID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address id %q", arg)
	}
	return id, nil
}

func addCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "add <kind> <label> <address>",
		Short: "Add a home or work address",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseKind(args[0])
			if err != nil {
				return err
			}

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			addr, err := s.addresses.AddAddress(cmd.Context(), kind, args[1], args[2])
			if err != nil {
				return err
			}

			fmt.Printf("Added %s address %q with ID %d\n", addr.Kind, addr.Label, addr.ID)
			return nil
		},
	}
}

func listCmd(cfg config.Config) *cobra.Command {
	var kindFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved addresses",
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind domain.Kind
			if kindFilter != "" {
				parsed, err := domain.ParseKind(kindFilter)
				if err != nil {
					return err
				}
				kind = parsed
			}

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			addresses, err := s.addresses.ListAddresses(cmd.Context(), kind)
			if err != nil {
				return err
			}

			if len(addresses) == 0 {
				fmt.Println("No addresses found. Use 'commute add' to create one.")
				return nil
			}

			fmt.Printf("%-5s %-6s %-20s %s\n", "ID", "KIND", "LABEL", "ADDRESS")
			for _, a := range addresses {
				fmt.Printf("%-5d %-6s %-20s %s\n", a.ID, a.Kind, a.Label, a.Location)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFilter, "kind", "", "filter by kind (home|work)")
	return cmd
}

func deleteCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an address and all of its samples",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAddressID(args[0])
			if err != nil {
				return err
			}

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.addresses.DeleteAddress(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Printf("Deleted address %d (including its samples)\n", id)
			return nil
		},
	}
}

func pollCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Poll current travel times once for all routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := traveltime.NewGoogleTravelTimeProvider(cfg.APIKey)
			if err != nil {
				return err
			}

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			poller := services.NewPoller(s.addresses, s.samples, provider, cfg.PollInterval)
			return poller.PollOnce(cmd.Context())
		},
	}
}

func monitorCmd(cfg config.Config) *cobra.Command {
	var intervalMinutes int

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Continuously poll travel times until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := traveltime.NewGoogleTravelTimeProvider(cfg.APIKey)
			if err != nil {
				return err
			}

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.MetricsAddr != "" {
				go serveMetrics(cfg.MetricsAddr)
			}

			interval := time.Duration(intervalMinutes) * time.Minute
			poller := services.NewPoller(s.addresses, s.samples, provider, interval)
			return poller.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&intervalMinutes, "interval", int(cfg.PollInterval.Minutes()), "polling interval in minutes")
	return cmd
}

// serveMetrics exposes poller counters while monitoring.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("metrics server listening on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("metrics server failed: %v", err)
	}
}

func currentCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "current <origin_id> <dest_id>",
		Short: "Get the current travel time for a route",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			originID, err := parseAddressID(args[0])
			if err != nil {
				return err
			}
			destinationID, err := parseAddressID(args[1])
			if err != nil {
				return err
			}

			provider, err := traveltime.NewGoogleTravelTimeProvider(cfg.APIKey)
			if err != nil {
				return err
			}

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			origin, err := s.addresses.GetAddress(cmd.Context(), originID)
			if err != nil {
				return err
			}
			destination, err := s.addresses.GetAddress(cmd.Context(), destinationID)
			if err != nil {
				return err
			}

			result, err := provider.GetTravelTime(cmd.Context(), origin.Location, destination.Location)
			if err != nil {
				return err
			}

			fmt.Printf("Current travel time %s -> %s:\n", origin.Label, destination.Label)
			fmt.Printf("  Without traffic: %.0f minutes\n", float64(result.DurationSeconds)/60)
			fmt.Printf("  With traffic:    %.0f minutes\n", float64(result.TrafficDurationSeconds)/60)
			fmt.Printf("  Distance:        %.1f km\n", float64(result.DistanceMeters)/1000)
			return nil
		},
	}
}

func statsCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <origin_id> <dest_id>",
		Short: "Show route statistics",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			originID, err := parseAddressID(args[0])
			if err != nil {
				return err
			}
			destinationID, err := parseAddressID(args[1])
			if err != nil {
				return err
			}

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			agg := services.NewAggregator(s.addresses, s.samples)
			stats, err := agg.Stats(cmd.Context(), originID, destinationID)
			if errors.Is(err, domain.ErrInsufficientData) {
				fmt.Println("No data available for this route yet. Run 'commute monitor' to collect samples.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Println("Route statistics:")
			fmt.Printf("  Samples:      %d\n", stats.Count)
			fmt.Printf("  Minimum time: %.1f minutes\n", stats.Min)
			fmt.Printf("  Average time: %.1f minutes\n", stats.Mean)
			fmt.Printf("  Maximum time: %.1f minutes\n", stats.Max)
			return nil
		},
	}
}

func recommendCmd(cfg config.Config) *cobra.Command {
	var arrival string

	cmd := &cobra.Command{
		Use:   "recommend <origin_id> <dest_id>",
		Short: "Suggest departure times per day of week",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			originID, err := parseAddressID(args[0])
			if err != nil {
				return err
			}
			destinationID, err := parseAddressID(args[1])
			if err != nil {
				return err
			}

			arriveBy, err := domain.ParseTimeOfDay(arrival)
			if err != nil {
				return err
			}

			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			rec := services.NewRecommender(s.addresses, s.samples)
			recs, err := rec.Recommend(cmd.Context(), originID, destinationID, arriveBy)
			if errors.Is(err, domain.ErrInsufficientData) {
				fmt.Println("Not enough data yet. Run 'commute monitor' to collect samples.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("Departure times to arrive by %s:\n\n", arriveBy)
			fmt.Printf("%-10s %-8s %-10s %s\n", "DAY", "DEPART", "DURATION", "SAMPLES")
			for _, r := range recs {
				note := ""
				if r.Fallback {
					note = "  (no hour arrives in time; earliest arrival shown)"
				}
				fmt.Printf("%-10s %-8s %-10s %d%s\n",
					r.Day, r.DepartAt, fmt.Sprintf("%.0f min", r.ExpectedMinutes), r.SampleCount, note)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&arrival, "arrival", "09:00", "target arrival time (HH:MM)")
	return cmd
}

func serveCmd(cfg config.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the read-only HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			router := api.NewRouter(s.addresses, s.samples)

			log.Printf("Server listening addr=%s", addr)
			srv := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       10 * time.Second,
				WriteTimeout:      30 * time.Second,
				IdleTimeout:       60 * time.Second,
			}
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "server address")
	return cmd
}
