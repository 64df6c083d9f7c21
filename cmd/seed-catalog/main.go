// Command seed-catalog loads a product catalog dump into MongoDB. The dump is
// a JSON array of products, optionally gzip-compressed (".gz" suffix), as
// exported from the previous hosting setup.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/product"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/storage/mongodb"
)

type productJSON struct {
	Name             string          `json:"productName"`
	Brand            string          `json:"brandName"`
	Category         string          `json:"category"`
	Subcategory      string          `json:"subcategory"`
	Price            decimal.Decimal `json:"price"`
	ShortDescription []string        `json:"shortDescription"`
	LongDescription  string          `json:"longDescription"`
	Image            string          `json:"image"`
}

func main() {
	var (
		mongoURI    string
		database    string
		catalogFile string
		workers     int
	)

	flag.StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI (or MONGO_URL env)")
	flag.StringVar(&database, "database", "radhelaptops", "MongoDB database name")
	flag.StringVar(&catalogFile, "catalog-file", "db/seed/products.json", "path to catalog JSON file (.gz supported)")
	flag.IntVar(&workers, "workers", 4, "number of concurrent insert workers")
	flag.Parse()

	if mongoURI == "" {
		mongoURI = os.Getenv("MONGO_URL")
	}
	if mongoURI == "" {
		slog.Error("mongo URI is required: set --mongo-uri or MONGO_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, mongoURI, database, catalogFile, workers); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("seed completed successfully")
}

func run(ctx context.Context, mongoURI, database, catalogFile string, workers int) error {
	slog.Info("connecting to mongodb")

	client, db, err := mongodb.Connect(ctx, mongoURI, database)
	if err != nil {
		return errors.Wrap(err, "connect mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "ensure indexes")
	}

	products, err := readCatalog(catalogFile)
	if err != nil {
		return errors.Wrap(err, "read catalog")
	}

	slog.Info("inserting products", slog.Int("count", len(products)), slog.Int("workers", workers))

	repo := mongodb.NewProductRepository(db)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, p := range products {
		p := p
		g.Go(func() error {
			rec := &product.Product{
				Name:             p.Name,
				Brand:            p.Brand,
				Category:         p.Category,
				Subcategory:      p.Subcategory,
				Price:            p.Price,
				ShortDescription: p.ShortDescription,
				LongDescription:  p.LongDescription,
				Image:            p.Image,
			}
			if err := repo.Create(ctx, rec); err != nil {
				return errors.Wrapf(err, "insert product %q", p.Name)
			}
			slog.Info("inserted product", slog.String("id", rec.ID), slog.String("name", rec.Name))
			return nil
		})
	}
	return g.Wait()
}

// readCatalog decodes the dump, transparently decompressing ".gz" files.
func readCatalog(path string) ([]productJSON, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "open gzip stream")
		}
		defer gz.Close()
		r = gz
	}

	var products []productJSON
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, errors.Wrap(err, "parse catalog JSON")
	}
	return products, nil
}
