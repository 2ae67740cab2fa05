package notification

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionLabel(t *testing.T) {
	cases := map[string]string{
		KindStockTransfer: "transferido",
		KindCreate:        "creado",
		KindUpdate:        "modificado",
		KindDelete:        "eliminado",
		"otro":            "otro",
	}
	for kind, want := range cases {
		assert.Equal(t, want, actionLabel(kind))
	}
}

func TestActionColor(t *testing.T) {
	assert.Equal(t, colorDeleted, actionColor("eliminado"))
	assert.Equal(t, colorCreated, actionColor("creado"))
	assert.Equal(t, colorDefault, actionColor("transferido"))
	assert.Equal(t, colorDefault, actionColor("modificado"))
}

func TestRenderProductNotification_Transferencia(t *testing.T) {
	subject, html := RenderProductNotification(
		"https://app.kazuo.co", KindStockTransfer, "Café molido 500g",
		"Se transfirieron 30 unidades de la bodega Norte a la bodega Sur.",
	)

	assert.Equal(t, "Kazuo - Producto transferido: Café molido 500g", subject)
	assert.Contains(t, html, "Café molido 500g")
	assert.Contains(t, html, "transferido")
	assert.Contains(t, html, "Se transfirieron 30 unidades")
	assert.Contains(t, html, `href="https://app.kazuo.co/Products"`, "el botón apunta al inventario del frontend")
	assert.Contains(t, html, colorDefault, "la transferencia usa el color por defecto")
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
}

func TestRenderProductNotification_Eliminacion(t *testing.T) {
	subject, html := RenderProductNotification(
		"https://app.kazuo.co", KindDelete, "Harina 1kg",
		"El producto ha sido eliminado permanentemente del sistema.",
	)

	assert.Equal(t, "Kazuo - Producto eliminado: Harina 1kg", subject)
	assert.Contains(t, html, colorDeleted, "la eliminación se resalta en rojo")
}

func TestRenderProductNotification_Creacion(t *testing.T) {
	_, html := RenderProductNotification(
		"https://app.kazuo.co", KindCreate, "Azúcar 2kg",
		"El producto fue creado exitosamente.",
	)
	assert.Contains(t, html, colorCreated, "la creación se resalta en verde")
}
