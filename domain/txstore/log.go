package txstore

import "github.com/crownplatform/crownwire/infrastructure/logger"

var log = logger.RegisterSubSystem("TXST")
