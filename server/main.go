package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"

	"github.com/theopendraft/rule-clarifier/server/api"
	"github.com/theopendraft/rule-clarifier/server/config"
	"github.com/theopendraft/rule-clarifier/server/dao"
	"github.com/theopendraft/rule-clarifier/server/data"
	"github.com/theopendraft/rule-clarifier/server/httpclient"
	"github.com/theopendraft/rule-clarifier/server/render"
	"github.com/theopendraft/rule-clarifier/server/service"
	"github.com/theopendraft/rule-clarifier/server/upload"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "rule-clarifier",
		Short:         "Railway operating-rules manual server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	root.AddCommand(
		serveCommand(&configPath),
		initDbCommand(&configPath),
		ingestCommand(&configPath),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the rule manual server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := setup(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer db.Close()

			store, err := upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxSizeBytes, cfg.Upload.MaxFiles)
			if err != nil {
				return err
			}

			app := buildApp(cfg, db, store)

			log.Info(fmt.Sprintf("Listening on %s", cfg.ListenAddr))
			return app.Listen(cfg.ListenAddr)
		},
	}
}

func initDbCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the database schema and seed reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := setup(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer db.Close()

			manualService := &service.ManualService{
				ManualDAO:   &dao.ManualDAO{Db: db},
				CircularDAO: &dao.CircularDAO{Db: db},
			}
			if err := manualService.SeedReferenceData(cmd.Context()); err != nil {
				return err
			}

			log.Info("Schema initialized and reference data seeded")
			return nil
		},
	}
}

func ingestCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <book-code> <text-file>",
		Short: "Ingest extracted manual text into a rule book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, db, err := setup(ctx, *configPath)
			if err != nil {
				return err
			}
			defer db.Close()

			bookCode := args[0]
			textPath := args[1]

			text, err := os.ReadFile(textPath)
			if err != nil {
				return fmt.Errorf("error reading %s: %w", textPath, err)
			}

			ruleBookDAO := &dao.RuleBookDAO{Db: db}
			book, err := ruleBookDAO.FindByCode(ctx, bookCode)
			if err != nil {
				return err
			}
			if book == nil {
				book = &data.RuleBook{Code: bookCode, Title: bookCode}
				if err := ruleBookDAO.Insert(ctx, book); err != nil {
					return err
				}
				book, err = ruleBookDAO.FindByCode(ctx, bookCode)
				if err != nil {
					return err
				}
			}

			ingestService := &service.IngestService{
				RuleBookDAO: ruleBookDAO,
				ChapterDAO:  &dao.ChapterDAO{Db: db},
			}

			result, err := ingestService.IngestText(ctx, book, textPath, string(text))
			if err != nil {
				return err
			}

			log.Info(fmt.Sprintf("Ingested %d chapters, %d rules into %s",
				result.ChapterCount, result.RuleCount, result.RuleBookCode))
			return nil
		},
	}
}

// setup loads configuration, opens the database and ensures the schema.
func setup(ctx context.Context, configPath string) (*config.Config, *sql.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	db, err := dao.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}

	if err := dao.InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return cfg, db, nil
}

// buildApp wires DAOs, services and API registrars into a Fiber app.
func buildApp(cfg *config.Config, db *sql.DB, store *upload.Store) *fiber.App {
	ruleBookDAO := &dao.RuleBookDAO{Db: db}
	chapterDAO := &dao.ChapterDAO{Db: db}
	ruleDAO := &dao.RuleDAO{Db: db}
	manualDAO := &dao.ManualDAO{Db: db}
	circularDAO := &dao.CircularDAO{Db: db}
	amendmentDAO := &dao.AmendmentDAO{Db: db}
	uploadedFileDAO := &dao.UploadedFileDAO{Db: db}

	ruleBookService := &service.RuleBookService{
		RuleBookDAO: ruleBookDAO,
		ChapterDAO:  chapterDAO,
		RuleDAO:     ruleDAO,
	}
	ruleEditService := &service.RuleEditService{
		RuleDAO:      ruleDAO,
		AmendmentDAO: amendmentDAO,
	}
	manualService := &service.ManualService{
		ManualDAO:   manualDAO,
		CircularDAO: circularDAO,
	}
	amendmentService := &service.AmendmentService{
		AmendmentDAO: amendmentDAO,
		RuleDAO:      ruleDAO,
	}
	exportService := &service.ExportService{
		RuleBookService: ruleBookService,
		PDFClient:       httpclient.NewPDFRenderClient(cfg.PDFServiceURL),
	}
	ingestService := &service.IngestService{
		ExtractClient:   httpclient.NewTextExtractClient(cfg.ExtractServiceURL),
		RuleBookDAO:     ruleBookDAO,
		ChapterDAO:      chapterDAO,
		UploadedFileDAO: uploadedFileDAO,
	}

	navigator := render.NewReferenceNavigator(logNavigator{}, cfg.ReferenceClearDelay())

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Upload.MaxSizeBytes) + 1<<20,
	})
	app.Static("/uploads", store.Dir())

	router := app.Group("/api")

	registrars := []interface{ Register() }{
		&api.RuleBookAPI{Router: router, RuleBookService: ruleBookService},
		&api.RuleAPI{Router: router, RuleEditService: ruleEditService},
		&api.ManualAPI{Router: router, ManualService: manualService},
		&api.AmendmentAPI{Router: router, AmendmentService: amendmentService},
		&api.ExportAPI{Router: router, ExportService: exportService},
		&api.UploadAPI{Router: router, Store: store, UploadedFileDAO: uploadedFileDAO, IngestService: ingestService},
		&api.ReferenceAPI{Router: router, Navigator: navigator},
	}
	for _, registrar := range registrars {
		registrar.Register()
	}

	return app
}

// logNavigator is the in-process navigation collaborator: it records
// where a reference activation navigated to.
type logNavigator struct{}

func (logNavigator) Navigate(view string, payload render.NavigationPayload) {
	log.Info(fmt.Sprintf("Navigate: %s (%s)", view, payload.Reference))
}
