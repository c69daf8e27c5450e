package tracing

import "go.opentelemetry.io/otel/attribute"

// Attribute keys used on store and outbound spans.
const (
	DBSystem    = attribute.Key("db.system")
	DBName      = attribute.Key("db.name")
	DBUser      = attribute.Key("db.user")
	DBStatement = attribute.Key("db.statement")
	DBOrderID   = attribute.Key("db.order_id")
	NetPeerName = attribute.Key("net.peer.name")

	PeerService    = attribute.Key("peer.service")
	HTTPMethod     = attribute.Key("http.request.method")
	HTTPStatusCode = attribute.Key("http.response.status_code")
	URLFull        = attribute.Key("url.full")
	ServerAddress  = attribute.Key("server.address")

	PaymentDelayMs = attribute.Key("payment.delay_ms")
)
