package notification

import (
	"fmt"
	"sync"

	"github.com/kazuo-app/kazuo-back/internal/application/inventory"
	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
	"github.com/kazuo-app/kazuo-back/internal/domain/repository"
	"github.com/kazuo-app/kazuo-back/pkg/logger"
)

// PushPublisher publica un evento en el canal de una empresa. Lo implementa
// push.Hub.
type PushPublisher interface {
	Publish(companyID string, payload any) error
}

// Mailer entrega un correo ya renderizado. Lo implementa mail.Sender.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// Dispatcher emite los efectos posteriores al commit de una acción sobre
// productos: un mensaje push al canal de la empresa y un correo a la dirección
// de notificación configurada. Se invoca estrictamente después del commit y
// corre desacoplado del ciclo request/response: un fallo de entrega se
// registra y jamás se propaga como fallo de la operación (ya durable). Un solo
// intento por evento; la pérdida silenciosa es la degradación aceptada.
type Dispatcher struct {
	hub         PushPublisher
	mailer      Mailer
	companyRepo repository.CompanyRepository
	log         *logger.Logger
	frontendURL string
	wg          sync.WaitGroup
}

// NewDispatcher construye el dispatcher. hub y mailer pueden ser nil (el canal
// correspondiente se omite).
func NewDispatcher(
	hub PushPublisher,
	mailer Mailer,
	companyRepo repository.CompanyRepository,
	log *logger.Logger,
	frontendURL string,
) *Dispatcher {
	return &Dispatcher{
		hub:         hub,
		mailer:      mailer,
		companyRepo: companyRepo,
		log:         log,
		frontendURL: frontendURL,
	}
}

// PublishStockTransfer implementa inventory.EventSink.
func (d *Dispatcher) PublishStockTransfer(product *entity.Product, result *inventory.TransferResultDTO, actorID string) {
	event := Event{
		Kind:        KindStockTransfer,
		ProductID:   product.ID,
		ProductName: product.Name,
		StoreIDs:    []string{result.SourceStoreID, result.TargetStoreID},
		Quantities:  []int64{result.SourceQuantity, result.TargetQuantity},
		ActorID:     actorID,
	}
	detail := fmt.Sprintf(
		"Se transfirieron %d unidades de la bodega %s a la bodega %s.",
		result.Quantity, result.SourceStoreID, result.TargetStoreID,
	)
	d.dispatchAsync(product.CompanyID, product.Name, event, detail)
}

// PublishProductEvent emite la notificación de un alta, modificación o baja de
// producto confirmada.
func (d *Dispatcher) PublishProductEvent(kind string, product *entity.Product, detail string) {
	event := Event{
		Kind:        kind,
		ProductID:   product.ID,
		ProductName: product.Name,
	}
	d.dispatchAsync(product.CompanyID, product.Name, event, detail)
}

// Wait bloquea hasta que los envíos en vuelo terminen. Usado en el apagado.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatchAsync(companyID, productName string, event Event, detail string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.dispatch(companyID, productName, event, detail)
	}()
}

func (d *Dispatcher) dispatch(companyID, productName string, event Event, detail string) {
	if d.hub != nil {
		if err := d.hub.Publish(companyID, event); err != nil {
			d.log.Warn().Err(err).
				Str("company_id", companyID).
				Str("kind", event.Kind).
				Msg("fallo publicando evento push")
		}
	}

	if d.mailer == nil {
		return
	}
	company, err := d.companyRepo.GetByID(companyID)
	if err != nil || company == nil || company.Email == "" {
		d.log.Warn().
			Str("company_id", companyID).
			Msg("sin dirección de notificación para la empresa, correo omitido")
		return
	}
	subject, body := RenderProductNotification(d.frontendURL, event.Kind, productName, detail)
	if err := d.mailer.Send(company.Email, subject, body); err != nil {
		d.log.Warn().Err(err).
			Str("to", company.Email).
			Str("kind", event.Kind).
			Msg("fallo enviando correo de notificación")
	}
}
