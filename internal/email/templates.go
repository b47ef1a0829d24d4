package email

import (
	"bytes"
	"fmt"
	"html/template"

	"tasdrives/internal/model"
	"tasdrives/internal/pricing"
)

var orderConfirmationTmpl = template.Must(template.New("order").Funcs(template.FuncMap{
	"money":     func(f *pricing.Formatter, v float64) string { return f.FormatCurrency(v) },
	"lineTotal": func(l model.OrderLine) float64 { return l.Price * float64(l.Quantity) },
}).Parse(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8"><title>Confirmación de pedido</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2>¡Gracias por tu compra{{if .CustomerName}}, {{.CustomerName}}{{end}}!</h2>
		<p>Tu pedido <strong>#{{.OrderNumber}}</strong> ha sido confirmado.</p>
		<table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left;">Vehículo</th>
					<th style="padding: 8px; text-align: left;">Cantidad</th>
					<th style="padding: 8px; text-align: left;">Precio</th>
					<th style="padding: 8px; text-align: left;">Total</th>
				</tr>
			</thead>
			<tbody>
			{{- range .Items}}
				<tr>
					<td style="padding: 8px;">{{.Name}}</td>
					<td style="padding: 8px;">{{.Quantity}}</td>
					<td style="padding: 8px;">{{money $.Formatter .Price}}</td>
					<td style="padding: 8px;">{{money $.Formatter (lineTotal .)}}</td>
				</tr>
			{{- end}}
			</tbody>
		</table>
		{{if .CouponCode}}<p>Cupón aplicado: {{.CouponCode}}</p>{{end}}
		{{if .OrderNote}}<p>Nota: {{.OrderNote}}</p>{{end}}
		<p style="font-size: 18px;"><strong>Total: {{money .Formatter .Total}}</strong></p>
		<p>Puedes consultar el estado de tu envío en tasdrives.com.</p>
	</div>
</body>
</html>
`))

var contactTmpl = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8"><title>Nuevo mensaje de contacto</title></head>
<body style="font-family: Arial, sans-serif;">
	<h2>Nuevo mensaje de contacto</h2>
	<p><strong>Nombre:</strong> {{.Name}}</p>
	<p><strong>Email:</strong> {{.Email}}</p>
	{{if .Phone}}<p><strong>Teléfono:</strong> {{.Phone}}</p>{{end}}
	<p><strong>Mensaje:</strong></p>
	<p>{{.Message}}</p>
</body>
</html>
`))

// OrderConfirmation holds the data rendered into the confirmation email.
type OrderConfirmation struct {
	OrderNumber  string
	CustomerName string
	Items        []model.OrderLine
	Total        float64
	CouponCode   string
	OrderNote    string
	Formatter    *pricing.Formatter
}

// RenderOrderConfirmation builds the order confirmation message for to.
func RenderOrderConfirmation(to string, data OrderConfirmation) (Message, error) {
	if data.Formatter == nil {
		data.Formatter = pricing.Default()
	}

	var buf bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("failed to render order confirmation: %w", err)
	}

	return Message{
		To:      []string{to},
		Subject: fmt.Sprintf("Confirmación de tu pedido #%s", data.OrderNumber),
		HTML:    buf.String(),
		Type:    TypeOrderConfirmation,
	}, nil
}

// RenderContact builds the message forwarding a contact form to inbox. Replies
// go to the person who filled in the form.
func RenderContact(inbox string, req model.ContactRequest) (Message, error) {
	var buf bytes.Buffer
	if err := contactTmpl.Execute(&buf, req); err != nil {
		return Message{}, fmt.Errorf("failed to render contact email: %w", err)
	}

	return Message{
		To:      []string{inbox},
		ReplyTo: req.Email,
		Subject: fmt.Sprintf("Nuevo mensaje de contacto de %s", req.Name),
		HTML:    buf.String(),
		Type:    TypeContact,
	}, nil
}
