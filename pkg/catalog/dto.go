package catalog

import (
	"encoding/json"
	"time"

	console "github.com/goliatone/go-catalog-admin/components/console"
)

// Wire formats use the backends' Spanish field names; converters produce the
// console's entities. List payloads arrive in three shapes (naked array,
// {data:[...]}, {data:{items:[...]}}); decodeItems tolerates all of them and
// degrades to empty on anything else, so a malformed payload can never fail
// a page render.

type envelope struct {
	Success *bool           `json:"success,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Items   json.RawMessage `json:"items,omitempty"`
	Total   int             `json:"total,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// unwrapData peels {data:...} and {items:...} envelopes until a raw value
// remains. Returns the innermost payload plus any total it saw on the way.
func unwrapData(raw json.RawMessage) (json.RawMessage, int) {
	total := 0
	for i := 0; i < 3; i++ {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			break
		}
		if env.Total > 0 {
			total = env.Total
		}
		switch {
		case len(env.Data) > 0:
			raw = env.Data
		case len(env.Items) > 0:
			raw = env.Items
		default:
			return raw, total
		}
	}
	return raw, total
}

// decodeItems unmarshals a tolerated list payload. Malformed input yields an
// empty slice, never an error.
func decodeItems[T any](raw json.RawMessage) []T {
	payload, _ := unwrapData(raw)
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil
	}
	return items
}

// decodeItemsTotal is decodeItems plus the envelope-reported total, falling
// back to the item count when the backend omits it.
func decodeItemsTotal[T any](raw json.RawMessage) ([]T, int) {
	payload, total := unwrapData(raw)
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, 0
	}
	if total == 0 {
		total = len(items)
	}
	return items, total
}

// decodeRecord unmarshals a single-record payload, unwrapping the envelope
// when present.
func decodeRecord[T any](raw json.RawMessage, target *T) error {
	payload, _ := unwrapData(raw)
	return json.Unmarshal(payload, target)
}

type userDTO struct {
	ID            int    `json:"id"`
	Nombre        string `json:"nombre"`
	Email         string `json:"email"`
	Telefono      string `json:"telefono"`
	Rol           string `json:"rol"`
	FechaRegistro string `json:"fecha_registro"`
}

func (d userDTO) toUser() console.User {
	return console.User{
		ID:           d.ID,
		Name:         d.Nombre,
		Email:        d.Email,
		Phone:        d.Telefono,
		Role:         d.Rol,
		RegisteredAt: parseDate(d.FechaRegistro),
	}
}

type motorcycleDTO struct {
	ID     int    `json:"id"`
	Marca  string `json:"marca"`
	Modelo string `json:"modelo"`
}

func (d motorcycleDTO) toMotorcycle() console.Motorcycle {
	return console.Motorcycle{ID: d.ID, Brand: d.Marca, Model: d.Modelo}
}

type commentDTO struct {
	ID            string `json:"_id"`
	UsuarioID     int    `json:"usuario_id"`
	MotocicletaID int    `json:"motocicleta_id"`
	Comentario    string `json:"comentario"`
	Calificacion  int    `json:"calificacion"`
	Fecha         string `json:"fecha"`
}

func (d commentDTO) toComment() console.Comment {
	return console.Comment{
		ID:           d.ID,
		UserID:       d.UsuarioID,
		MotorcycleID: d.MotocicletaID,
		Text:         d.Comentario,
		Rating:       d.Calificacion,
		Date:         parseDate(d.Fecha),
	}
}

type leadDTO struct {
	ID       int    `json:"id"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Telefono string `json:"telefono"`
	Mensaje  string `json:"mensaje"`
	Estado   string `json:"estado"`
	Fecha    string `json:"fecha"`
}

func (d leadDTO) toLead() console.Lead {
	return console.Lead{
		ID:      d.ID,
		Name:    d.Nombre,
		Email:   d.Email,
		Phone:   d.Telefono,
		Message: d.Mensaje,
		Status:  d.Estado,
		Date:    parseDate(d.Fecha),
	}
}

type logDTO struct {
	ID        string         `json:"_id,omitempty"`
	Accion    string         `json:"accion"`
	UsuarioID *int           `json:"usuario_id,omitempty"`
	Timestamp *string        `json:"timestamp,omitempty"`
	IP        string         `json:"ip,omitempty"`
	Detalles  map[string]any `json:"detalles,omitempty"`
}

func (d logDTO) toLog() console.SystemLog {
	entry := console.SystemLog{
		ID:      d.ID,
		Action:  d.Accion,
		UserID:  d.UsuarioID,
		IP:      d.IP,
		Details: d.Detalles,
	}
	if d.Timestamp != nil {
		if ts := parseDate(*d.Timestamp); !ts.IsZero() {
			entry.Timestamp = &ts
		}
	}
	return entry
}

type faqDTO struct {
	ID        int    `json:"id"`
	Pregunta  string `json:"pregunta"`
	Respuesta string `json:"respuesta"`
	Categoria string `json:"categoria,omitempty"`
	Orden     int    `json:"orden"`
	Activo    bool   `json:"activo"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func (d faqDTO) toFaq() console.Faq {
	return console.Faq{
		ID:        d.ID,
		Question:  d.Pregunta,
		Answer:    d.Respuesta,
		Category:  d.Categoria,
		Order:     d.Orden,
		Active:    d.Activo,
		CreatedAt: parseDate(d.CreatedAt),
		UpdatedAt: parseDate(d.UpdatedAt),
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
}

// parseDate accepts the timestamp formats observed across the backends and
// degrades to the zero time rather than failing a render.
func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func toUsers(items []userDTO) []console.User {
	users := make([]console.User, len(items))
	for i, item := range items {
		users[i] = item.toUser()
	}
	return users
}

func toMotorcycles(items []motorcycleDTO) []console.Motorcycle {
	motos := make([]console.Motorcycle, len(items))
	for i, item := range items {
		motos[i] = item.toMotorcycle()
	}
	return motos
}

func toComments(items []commentDTO) []console.Comment {
	comments := make([]console.Comment, len(items))
	for i, item := range items {
		comments[i] = item.toComment()
	}
	return comments
}

func toLeads(items []leadDTO) []console.Lead {
	leads := make([]console.Lead, len(items))
	for i, item := range items {
		leads[i] = item.toLead()
	}
	return leads
}

func toLogs(items []logDTO) []console.SystemLog {
	logs := make([]console.SystemLog, len(items))
	for i, item := range items {
		logs[i] = item.toLog()
	}
	return logs
}

func toFaqs(items []faqDTO) []console.Faq {
	faqs := make([]console.Faq, len(items))
	for i, item := range items {
		faqs[i] = item.toFaq()
	}
	return faqs
}
