// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package auth

import "go.opentelemetry.io/otel"

var tracer = otel.GetTracerProvider().Tracer("github.com/quixsi/luxeplate/internal/auth")
