package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saborvila/poscore/internal/auth"
	productrepo "github.com/saborvila/poscore/internal/product/repo"
	"github.com/saborvila/poscore/internal/report"
	salesrepo "github.com/saborvila/poscore/internal/sales/repo"
	"github.com/saborvila/poscore/pkg/database"
	"github.com/saborvila/poscore/pkg/utilities"
)

type app struct {
	sugar *zap.SugaredLogger
	db    *sqlx.DB
	cfg   database.Config
}

func main() {
	// load .env file if present so os.Getenv picks values from it
	_ = godotenv.Load()

	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	a := &app{sugar: lg.Sugar(), cfg: database.ConfigFromEnv()}

	root := &cobra.Command{
		Use:           "pos",
		Short:         "Sabor da Vila back-office: catalog, accounts and reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Open(a.cfg)
			if err != nil {
				return err
			}
			a.db = db
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.db != nil {
				a.db.Close()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.cfg.Path, "db", a.cfg.Path, "path to the store file")

	root.AddCommand(a.initCmd(), a.seedCmd(), a.registerCmd(), a.reportCmd(), a.exportDBCmd())

	if err := root.Execute(); err != nil {
		a.sugar.Errorw("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Erro: não foi possível concluir a operação.")
		os.Exit(1)
	}
}

// initCmd brings the schema to the current shape. Safe to run on every cold
// start; a products table under a stale shape is rebuilt and reseeded, which
// discards its rows.
func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or migrate the store schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := auth.NewService(a.db, nil)
			if err := svc.EnsureSchema(ctx); err != nil {
				return err
			}
			rebuilt, err := productrepo.NewRepo(a.db).EnsureTable(ctx)
			if err != nil {
				return err
			}
			if rebuilt {
				a.sugar.Warnw("products table rebuilt from stale schema; prior rows discarded and starter catalog seeded")
			}
			a.sugar.Infow("schema ready", "path", a.cfg.Path)
			return nil
		},
	}
}

// seedCmd fills an empty current-shape products table with the starter
// catalog. A table that already has rows is left alone.
func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the starter catalog into an empty products table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo := productrepo.NewRepo(a.db)
			if _, err := repo.EnsureTable(ctx); err != nil {
				return err
			}
			seeded, err := repo.SeedIfEmpty(ctx)
			if err != nil {
				return err
			}
			if seeded {
				a.sugar.Infow("starter catalog seeded")
			} else {
				a.sugar.Infow("products table not empty; nothing seeded")
			}
			return nil
		},
	}
}

func (a *app) registerCmd() *cobra.Command {
	var in auth.RegisterUserInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := auth.NewService(a.db, nil).RegisterUser(cmd.Context(), in)
			if err != nil {
				return err
			}
			a.sugar.Infow("user registered", "id", u.ID, "email", u.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Nome, "nome", "", "first name")
	cmd.Flags().StringVar(&in.Sobrenome, "sobrenome", "", "last name")
	cmd.Flags().StringVar(&in.TipoDocumento, "tipo-documento", "CPF", "CPF or CNPJ")
	cmd.Flags().StringVar(&in.CPF, "cpf", "", "CPF number")
	cmd.Flags().StringVar(&in.CNPJ, "cnpj", "", "CNPJ number")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Telefone, "telefone", "", "phone number")
	cmd.Flags().StringVar(&in.Endereco, "endereco", "", "address")
	cmd.Flags().StringVar(&in.Senha, "senha", "", "password")
	cmd.MarkFlagRequired("nome")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("senha")
	return cmd
}

// reportCmd builds one of the three report row-sets and renders it as
// delimited text on stdout or into a file.
func (a *app) reportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:       "report {sales|inventory|products}",
		Short:     "Generate a report as delimited text",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"sales", "inventory", "products"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				rs  report.RowSet
				err error
			)
			switch args[0] {
			case "sales":
				var rep *report.SalesReport
				sales, serr := salesrepo.NewRepo(a.db).RecentSales(ctx)
				if serr != nil {
					return serr
				}
				if rep, err = report.SummarizeSales(sales); err == nil {
					rs = report.SalesRowSet(rep)
				}
			case "inventory":
				var rep *report.InventoryReport
				products, perr := productrepo.NewRepo(a.db).GetAll(ctx)
				if perr != nil {
					return perr
				}
				if rep, err = report.SummarizeInventory(products); err == nil {
					rs = report.InventoryRowSet(rep)
				}
			case "products":
				var rep *report.RankingReport
				sales, serr := salesrepo.NewRepo(a.db).RecentSales(ctx)
				if serr != nil {
					return serr
				}
				if rep, err = report.RankProducts(sales); err == nil {
					rs = report.RankingRowSet(rep)
				}
			}
			if errors.Is(err, report.ErrEmptyDataset) {
				fmt.Println("Aviso: não há dados para gerar o relatório.")
				return nil
			}
			if err != nil {
				return err
			}
			a.sugar.Infow("report generated", "title", rs.Title, "date", report.Today(), "rows", len(rs.Rows))
			return writeRowSet(rs, out)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write CSV to file instead of stdout")
	return cmd
}

func writeRowSet(rs report.RowSet, out string) error {
	var dst io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		dst = f
	}
	w := csv.NewWriter(dst)
	if err := w.Write(rs.Columns); err != nil {
		return err
	}
	if err := w.WriteAll(rs.Rows); err != nil {
		return err
	}
	if err := w.Write(rs.Totals); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// exportDBCmd copies the raw store file to a shareable location.
func (a *app) exportDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-db <destination>",
		Short: "Copy the store file to a shareable location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// close the handle first so the file on disk is fully flushed
			a.db.Close()
			a.db = nil

			src, err := os.Open(a.cfg.Path)
			if err != nil {
				return fmt.Errorf("store file not found, run an operation first: %w", err)
			}
			defer src.Close()

			dst, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer dst.Close()

			if _, err := io.Copy(dst, src); err != nil {
				return err
			}
			a.sugar.Infow("store exported", "from", a.cfg.Path, "to", args[0])
			return nil
		},
	}
}
