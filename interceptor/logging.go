package interceptor

import (
	"github.com/kyazgan/restkit/logger"
	"github.com/kyazgan/restkit/restclient"
)

// Logging logs every outbound request at debug level. Logging is an
// observable side effect, not a transformation: the request passes
// through unchanged.
func Logging(log *logger.Logger) restclient.Interceptor {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("restclient")
	return func(req restclient.Request) restclient.Request {
		log.Debug("outbound request", logger.Fields(
			logger.FieldMethod, req.Method,
			logger.FieldURL, req.URL,
		))
		return req
	}
}
