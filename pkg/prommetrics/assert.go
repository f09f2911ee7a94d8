package prommetrics

import "github.com/aoai-lb/aoai-lb/pkg/transport"

var _ transport.Recorder = Recorder{}
