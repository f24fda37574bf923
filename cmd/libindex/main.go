package main

import (
	"fmt"

	"github.com/Tython3/AutoCodebaseIndex/internal/cli"
	"github.com/Tython3/AutoCodebaseIndex/internal/utils"
)

// main is the entry point for the libindex command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
