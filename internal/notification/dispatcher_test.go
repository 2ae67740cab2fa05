package notification

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazuo-app/kazuo-back/internal/application/inventory"
	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
	"github.com/kazuo-app/kazuo-back/pkg/logger"
)

type stubHub struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (h *stubHub) Publish(companyID string, payload any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.events = append(h.events, payload.(Event))
	return nil
}

type stubMailer struct {
	mu       sync.Mutex
	sent     []string // destinatarios
	subjects []string
	err      error
}

func (m *stubMailer) Send(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	m.subjects = append(m.subjects, subject)
	return nil
}

type stubCompanyRepo struct {
	company *entity.Company
}

func (r *stubCompanyRepo) Create(*entity.Company) error { return nil }
func (r *stubCompanyRepo) Update(*entity.Company) error { return nil }
func (r *stubCompanyRepo) Delete(string) error          { return nil }
func (r *stubCompanyRepo) List(int, int) ([]*entity.Company, error) {
	return nil, nil
}
func (r *stubCompanyRepo) GetByID(id string) (*entity.Company, error) {
	if r.company != nil && r.company.ID == id {
		return r.company, nil
	}
	return nil, nil
}

func testProduct() *entity.Product {
	return &entity.Product{
		ID:        "p1",
		CompanyID: "c1",
		Name:      "Café molido 500g",
	}
}

func testResult() *inventory.TransferResultDTO {
	return &inventory.TransferResultDTO{
		ProductID:      "p1",
		ProductName:    "Café molido 500g",
		SourceStoreID:  "a1",
		TargetStoreID:  "b1",
		Quantity:       5,
		SourceQuantity: 15,
		TargetQuantity: 5,
	}
}

func TestDispatcher_PublicaPushYCorreo(t *testing.T) {
	hub := &stubHub{}
	mailer := &stubMailer{}
	repo := &stubCompanyRepo{company: &entity.Company{ID: "c1", Email: "dueno@tienda.co"}}
	d := NewDispatcher(hub, mailer, repo, logger.Nop(), "https://app.kazuo.co")

	d.PublishStockTransfer(testProduct(), testResult(), "u1")
	d.Wait()

	require.Len(t, hub.events, 1)
	ev := hub.events[0]
	assert.Equal(t, KindStockTransfer, ev.Kind)
	assert.Equal(t, "p1", ev.ProductID)
	assert.Equal(t, []string{"a1", "b1"}, ev.StoreIDs)
	assert.Equal(t, []int64{15, 5}, ev.Quantities)
	assert.Equal(t, "u1", ev.ActorID)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "dueno@tienda.co", mailer.sent[0])
	assert.Contains(t, mailer.subjects[0], "transferido")
}

func TestDispatcher_FalloDePushNoImpideElCorreo(t *testing.T) {
	hub := &stubHub{err: errors.New("canal caído")}
	mailer := &stubMailer{}
	repo := &stubCompanyRepo{company: &entity.Company{ID: "c1", Email: "dueno@tienda.co"}}
	d := NewDispatcher(hub, mailer, repo, logger.Nop(), "https://app.kazuo.co")

	d.PublishStockTransfer(testProduct(), testResult(), "u1")
	d.Wait()

	assert.Len(t, mailer.sent, 1, "el correo sale aunque el push falle")
}

func TestDispatcher_SinEmailDeEmpresa_OmiteCorreo(t *testing.T) {
	hub := &stubHub{}
	mailer := &stubMailer{}
	repo := &stubCompanyRepo{company: &entity.Company{ID: "c1"}} // sin email
	d := NewDispatcher(hub, mailer, repo, logger.Nop(), "https://app.kazuo.co")

	d.PublishStockTransfer(testProduct(), testResult(), "u1")
	d.Wait()

	assert.Len(t, hub.events, 1, "el push sí se publica")
	assert.Empty(t, mailer.sent)
}

func TestDispatcher_FalloDeCorreoNoSePropaga(t *testing.T) {
	hub := &stubHub{}
	mailer := &stubMailer{err: errors.New("SMTP rechazado")}
	repo := &stubCompanyRepo{company: &entity.Company{ID: "c1", Email: "dueno@tienda.co"}}
	d := NewDispatcher(hub, mailer, repo, logger.Nop(), "https://app.kazuo.co")

	// No hay error que observar: la entrega es best-effort y solo se registra.
	d.PublishStockTransfer(testProduct(), testResult(), "u1")
	d.Wait()

	assert.Empty(t, mailer.sent)
}

func TestDispatcher_EventoDeProducto(t *testing.T) {
	hub := &stubHub{}
	repo := &stubCompanyRepo{}
	d := NewDispatcher(hub, nil, repo, logger.Nop(), "")

	d.PublishProductEvent(KindDelete, testProduct(), "El producto ha sido eliminado permanentemente del sistema.")
	d.Wait()

	require.Len(t, hub.events, 1)
	assert.Equal(t, KindDelete, hub.events[0].Kind)
	assert.Equal(t, "Café molido 500g", hub.events[0].ProductName)
}
