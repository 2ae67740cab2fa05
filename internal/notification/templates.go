package notification

import (
	"fmt"
	"strings"
)

// Colores por acción para el bloque destacado del correo.
const (
	colorDefault = "#2563EB"
	colorDeleted = "#ef4444"
	colorCreated = "#10b981"
)

// actionLabel texto humano por tipo de acción.
func actionLabel(kind string) string {
	switch kind {
	case KindStockTransfer:
		return "transferido"
	case KindCreate:
		return "creado"
	case KindUpdate:
		return "modificado"
	case KindDelete:
		return "eliminado"
	default:
		return kind
	}
}

func actionColor(action string) string {
	a := strings.ToLower(action)
	switch {
	case strings.Contains(a, "elimina"):
		return colorDeleted
	case strings.Contains(a, "cread"):
		return colorCreated
	default:
		return colorDefault
	}
}

// RenderProductNotification construye asunto y cuerpo HTML del correo de
// notificación de producto. Función pura: (tipo de acción, nombre de producto,
// detalle) -> render, sin estado oculto, verificable por snapshot.
func RenderProductNotification(frontendURL, kind, productName, details string) (subject, html string) {
	action := actionLabel(kind)
	color := actionColor(action)

	subject = fmt.Sprintf("Kazuo - Producto %s: %s", action, productName)

	content := fmt.Sprintf(`
        <h1 class="title">Actualización de Producto</h1>
        <p class="subtitle">Se ha realizado una acción en el inventario.</p>

        <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid %s; text-align: left;">
            <p style="margin: 0 0 10px 0;"><strong>Producto:</strong> %s</p>
            <p style="margin: 0 0 10px 0;"><strong>Acción:</strong> <span style="color: %s; font-weight: bold;">%s</span></p>
            <p style="margin: 0;"><strong>Detalles:</strong> %s</p>
        </div>

        <a href="%s/Products" class="button">Ver Inventario</a>`,
		color, productName, color, action, details, frontendURL)

	return subject, baseTemplate("Actualización de Producto", content)
}

// baseTemplate envoltorio HTML común de los correos de Kazuo.
func baseTemplate(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; background-color: #f4f4f7; margin: 0; padding: 0; }
  .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 32px; border-radius: 8px; }
  .title { color: #111827; font-size: 24px; margin-bottom: 8px; }
  .subtitle { color: #6b7280; font-size: 16px; margin-bottom: 24px; }
  .button { display: inline-block; background-color: #2563EB; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none; margin-top: 16px; }
  .footer { color: #9ca3af; font-size: 12px; text-align: center; margin-top: 24px; }
</style>
</head>
<body>
  <div class="container">
%s
    <p class="footer">Kazuo - Gestión de inventario</p>
  </div>
</body>
</html>`, title, content)
}
