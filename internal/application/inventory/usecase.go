package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/kazuo-app/kazuo-back/internal/application/guard"
	"github.com/kazuo-app/kazuo-back/internal/domain"
	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
	"github.com/kazuo-app/kazuo-back/internal/domain/repository"
	"github.com/kazuo-app/kazuo-back/pkg/logger"
)

// TransferInputDTO entrada para una transferencia de stock entre bodegas.
// Efímero: se construye por llamada, se valida y se descarta.
type TransferInputDTO struct {
	SourceStoreID string
	TargetStoreID string
	Barcode       string
	Quantity      int64
}

// TransferResultDTO cantidades resultantes tras la transferencia, usadas
// también como payload de notificación.
type TransferResultDTO struct {
	ProductID      string
	ProductName    string
	SourceStoreID  string
	TargetStoreID  string
	Quantity       int64
	SourceQuantity int64
	TargetQuantity int64
}

// Config parámetros del motor de transferencias.
type Config struct {
	Timeout    time.Duration // presupuesto de ejecución; excedido = ErrTimeout
	MaxRetries int           // intentos totales ante ErrConcurrencyConflict
	// RequireSameCompanyStores exige que las dos bodegas pertenezcan a la
	// empresa del principal, además de la propiedad del producto.
	RequireSameCompanyStores bool
}

const (
	defaultTimeout    = 5 * time.Second
	defaultMaxRetries = 3
)

// TransferStockUseCase mueve cantidad de un producto (por código de barras)
// entre dos bodegas de forma atómica: bloqueo de fila (SELECT FOR UPDATE) en
// orden determinista, decremento y aumento en la misma transacción, y
// Commit/Rollback. Tras el commit publica los efectos (push + correo) sin
// afectar la respuesta.
type TransferStockUseCase struct {
	txRunner  TxRunner
	guard     *guard.Guard
	storeRepo repository.StoreRepository
	sink      EventSink // puede ser nil (sin notificaciones)
	log       *logger.Logger
	cfg       Config
}

// NewTransferStockUseCase construye el caso de uso.
func NewTransferStockUseCase(
	txRunner TxRunner,
	g *guard.Guard,
	storeRepo repository.StoreRepository,
	sink EventSink,
	log *logger.Logger,
	cfg Config,
) *TransferStockUseCase {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	return &TransferStockUseCase{
		txRunner:  txRunner,
		guard:     g,
		storeRepo: storeRepo,
		sink:      sink,
		log:       log,
		cfg:       cfg,
	}
}

// Transfer valida la petición, admite al principal (guard, antes de abrir la
// transacción), ejecuta el movimiento atómico con reintento acotado ante
// conflictos de serialización, y devuelve las cantidades resultantes.
//
// Garantía: la suma de cantidades entre las dos bodegas se conserva y ningún
// observador ve una cantidad negativa ni un decremento sin su aumento.
func (uc *TransferStockUseCase) Transfer(ctx context.Context, principal *guard.Principal, input TransferInputDTO) (*TransferResultDTO, error) {
	// Validación de entrada: ninguna lectura ni escritura del ledger ocurre
	// para una petición malformada.
	if input.Barcode == "" || input.SourceStoreID == "" || input.TargetStoreID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.SourceStoreID == input.TargetStoreID || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	// Guard completo antes de la transacción: un caller no autorizado nunca
	// provoca un bloqueo de fila, ni siquiera transitorio.
	product, err := uc.guard.AdmitProduct(principal, guard.ProductRef{Barcode: input.Barcode}, entity.PermManageInventory)
	if err != nil {
		return nil, err
	}

	if uc.cfg.RequireSameCompanyStores {
		if err := uc.checkStores(principal.CompanyID, input.SourceStoreID, input.TargetStoreID); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	var result *TransferResultDTO
	operation := func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		res, err := uc.runTransfer(ctx, product, principal.UserID, input)
		if err != nil {
			// Solo el conflicto de serialización se reintenta, con lecturas
			// frescas; todo lo demás propaga de inmediato.
			if errors.Is(err, domain.ErrConcurrencyConflict) {
				uc.log.Warn().
					Str("barcode", input.Barcode).
					Str("source", input.SourceStoreID).
					Str("target", input.TargetStoreID).
					Msg("conflicto de serialización en transferencia, reintentando")
				return err
			}
			return backoff.Permanent(err)
		}
		result = res
		return nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(uc.cfg.MaxRetries-1)),
		ctx,
	)
	if err := backoff.Retry(operation, bo); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.ErrTimeout
		}
		return nil, err
	}

	// Efectos posteriores al commit: estrictamente después, nunca antes. Son
	// best-effort y se ejecutan desacoplados de la cancelación del caller.
	if uc.sink != nil {
		uc.sink.PublishStockTransfer(product, result, principal.UserID)
	}

	return result, nil
}

// checkStores valida que origen y destino existan y pertenezcan a la empresa.
func (uc *TransferStockUseCase) checkStores(companyID, sourceStoreID, targetStoreID string) error {
	source, err := uc.storeRepo.GetByID(sourceStoreID)
	if err != nil {
		return err
	}
	target, err := uc.storeRepo.GetByID(targetStoreID)
	if err != nil {
		return err
	}
	if source == nil || target == nil || source.CompanyID != companyID || target.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return nil
}

// runTransfer ejecuta un intento de transferencia dentro de una transacción.
func (uc *TransferStockUseCase) runTransfer(ctx context.Context, product *entity.Product, userID string, input TransferInputDTO) (*TransferResultDTO, error) {
	now := time.Now()
	txID := uuid.New().String()

	var result *TransferResultDTO
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		// Orden de bloqueo determinista (lexicográfico por id de bodega) para
		// que dos transferencias concurrentes sobre el mismo par no se
		// bloqueen en cruz.
		first, second := input.SourceStoreID, input.TargetStoreID
		if second < first {
			first, second = second, first
		}
		entries := make(map[string]*entity.StockEntry, 2)
		for _, storeID := range []string{first, second} {
			entry, err := stockRepo.GetForUpdate(storeID, product.ID)
			if err != nil {
				return err
			}
			entries[storeID] = entry
		}

		source := entries[input.SourceStoreID]
		if source == nil {
			// Nada que transferir: el producto nunca tuvo stock en origen.
			return domain.ErrNotFound
		}
		if source.Quantity < input.Quantity {
			return domain.ErrInsufficientStock
		}

		target := entries[input.TargetStoreID]
		if target == nil {
			// La entrada destino se crea de forma perezosa con cantidad 0.
			target = &entity.StockEntry{StoreID: input.TargetStoreID, ProductID: product.ID}
		}

		source.Quantity -= input.Quantity
		target.Quantity += input.Quantity
		source.UpdatedAt = now
		target.UpdatedAt = now

		if err := stockRepo.Upsert(source); err != nil {
			return err
		}
		if err := stockRepo.Upsert(target); err != nil {
			return err
		}

		// Dos filas en el libro de movimientos con el mismo TransactionID.
		outMov := &entity.StockMovement{
			ID:            uuid.New().String(),
			TransactionID: txID,
			ProductID:     product.ID,
			StoreID:       input.SourceStoreID,
			Type:          entity.MovementTypeTRANSFER,
			Quantity:      -input.Quantity,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		if err := movementRepo.Create(outMov); err != nil {
			return err
		}
		inMov := &entity.StockMovement{
			ID:            uuid.New().String(),
			TransactionID: txID,
			ProductID:     product.ID,
			StoreID:       input.TargetStoreID,
			Type:          entity.MovementTypeTRANSFER,
			Quantity:      input.Quantity,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		if err := movementRepo.Create(inMov); err != nil {
			return err
		}

		result = &TransferResultDTO{
			ProductID:      product.ID,
			ProductName:    product.Name,
			SourceStoreID:  input.SourceStoreID,
			TargetStoreID:  input.TargetStoreID,
			Quantity:       input.Quantity,
			SourceQuantity: source.Quantity,
			TargetQuantity: target.Quantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
