package ldb

import "github.com/crownplatform/crownwire/infrastructure/logger"

var log = logger.RegisterSubSystem("LDB")
