package otel

import "go.opentelemetry.io/otel"

var Tracer = otel.Tracer("github.com/jesuisfatih/eagledtfprint-sub004/internal")
