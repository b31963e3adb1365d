package navigation

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "navigation")
