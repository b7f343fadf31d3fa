// seed carga un catálogo de productos con su estoque inicial y, opcionalmente, un usuario admin.
//
// Uso: go run ./cmd/seed -file catalogo.csv [-latin1] [-admin-email a@b.com -admin-password ...]
// Formato: sku;name;description;category;unit;minimum_level;quantity (cabecera opcional).
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

func main() {
	file := flag.String("file", "catalogo.csv", "CSV del catálogo")
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1")
	adminEmail := flag.String("admin-email", "", "email del usuario admin a crear")
	adminPassword := flag.String("admin-password", "", "password del usuario admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "estoque-seed"})

	if cfg.App.Storage != config.StoragePostgres {
		log.Fatal().Str("storage", cfg.App.Storage).Msg("el seed solo tiene sentido con STORAGE=postgres")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productUC := usecase.NewProductUseCase(productRepo)
	inventorySvc := inventory.NewService(
		postgres.NewTxRunner(pool),
		postgres.NewInventoryRepository(pool),
		productRepo,
		postgres.NewStockMovementRepository(pool),
		nil,
	)

	if *adminEmail != "" {
		authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
			Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
		})
		if err := seedAdmin(ctx, authUC, *adminEmail, *adminPassword); err != nil {
			log.Fatal().Err(err).Str("email", *adminEmail).Msg("crear admin")
		}
		log.Info().Str("email", *adminEmail).Msg("usuario admin listo")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir catálogo")
	}
	defer f.Close()

	rows, skipped, err := readCatalog(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}
	for _, s := range skipped {
		log.Warn().Int("line", s.Line).Err(s.Err).Msg("línea descartada")
	}

	res := seedCatalog(ctx, productUC, inventorySvc, rows, log)
	log.Info().
		Int("productos", res.Created).
		Int("existentes", res.Existing).
		Int("descartados", res.Failed+len(skipped)).
		Msg("seed terminado")
}

// seedResult totales del seed.
type seedResult struct {
	Created  int
	Existing int
	Failed   int
}

// seedCatalog crea producto y estoque por fila a través de los casos de uso, así se aplican
// las mismas validaciones que en la API. Un SKU existente se omite sin tocar su estoque.
func seedCatalog(
	ctx context.Context,
	productUC *usecase.ProductUseCase,
	inventorySvc *inventory.Service,
	rows []catalogRow,
	log *logger.Logger,
) seedResult {
	var res seedResult
	for _, row := range rows {
		product, err := productUC.Create(ctx, dto.CreateProductRequest{
			SKU:           row.SKU,
			Name:          row.Name,
			Description:   row.Description,
			Category:      row.Category,
			UnitOfMeasure: row.Unit,
			MinimumLevel:  row.MinimumLevel,
		})
		var ruleErr *domain.BusinessRuleError
		switch {
		case errors.As(err, &ruleErr):
			res.Existing++
			continue
		case err != nil:
			res.Failed++
			log.Warn().Int("line", row.Line).Str("sku", row.SKU).Err(err).Msg("producto descartado")
			continue
		}
		if _, err := inventorySvc.CreateInventory(ctx, dto.CreateInventoryRequest{
			ProductID:       product.ID,
			CurrentQuantity: row.Quantity,
		}); err != nil {
			res.Failed++
			log.Warn().Int("line", row.Line).Str("sku", row.SKU).Err(err).Msg("estoque descartado")
			continue
		}
		res.Created++
	}
	return res
}

func seedAdmin(ctx context.Context, authUC *auth.AuthUseCase, email, password string) error {
	_, err := authUC.CreateUser(ctx, dto.CreateUserRequest{
		Email:    email,
		Password: password,
		Name:     "Administrador",
		Role:     entity.RoleAdmin,
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return nil
	}
	return err
}
