package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/jesuisfatih/eagledtfprint-sub004/internal/constants"
)

var Tracer = otel.Tracer(constants.AppCartService)
