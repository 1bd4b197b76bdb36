package netsock

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// The networking subsystem is process-wide state that some platforms require
// to be brought up before the first socket call. It is initialized lazily on
// first use; sync.Once provides the fast-path flag read plus the mutex that
// keeps a first-use race between threads from running the bring-up twice.
var netSystem struct {
	once sync.Once
	err  error
}

// initNetworking performs the platform bring-up exactly once and returns its
// result, which every subsequent call observes as well. Teardown happens at
// process exit on the platforms that need any.
func initNetworking() error {
	netSystem.once.Do(func() {
		netSystem.err = platformNetInit()
		if netSystem.err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "initNetworking",
				"error":    netSystem.err.Error(),
			}).Error("Networking subsystem initialization failed")
		}
	})
	return netSystem.err
}
