package commands

import (
	"os"

	"github.com/deeptony/flightInsurance/src/flightsurety"
	"github.com/deeptony/flightInsurance/src/notify"
	"github.com/deeptony/flightInsurance/src/service"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//NewRunCmd returns the command that starts a flightsurety engine
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run engine",
		PreRunE: loadConfig,
		RunE:    runEngine,
	}
	AddRunFlags(cmd)
	return cmd
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runEngine(cmd *cobra.Command, args []string) error {
	logger := _config.Logger()

	addLogFileHooks(logger)

	engine := flightsurety.NewFlightSurety(_config)

	if err := engine.Init(); err != nil {
		logger.Error("Cannot initialize engine:", err)
		return err
	}
	defer engine.Shutdown()

	serviceServer := service.NewService(_config.ServiceAddr, engine, logger)

	go serviceServer.Serve()

	drainNotifications(engine, logger)

	return nil
}

// drainNotifications logs every event emitted by the core. An embedding
// application would subscribe its own watcher instead.
func drainNotifications(engine *flightsurety.FlightSurety, logger *logrus.Entry) {
	notifier, ok := engine.Notifier.(*notify.InmemNotifier)
	if !ok {
		select {}
	}

	for event := range notifier.EventCh() {
		logger.WithFields(logrus.Fields{
			"name":    event.Name,
			"payload": event.Payload,
		}).Info("Event")
	}
}

// addLogFileHooks mirrors info and debug output to per-level files in the
// data directory.
func addLogFileHooks(logger *logrus.Entry) {
	pathMap := lfshook.PathMap{}

	infoLog := _config.DataDir + "/flightsurety_info.log"
	if _, err := os.OpenFile(infoLog, os.O_CREATE|os.O_WRONLY, 0666); err != nil {
		logger.Info("Failed to open flightsurety_info.log file, using default stderr")
	} else {
		pathMap[logrus.InfoLevel] = infoLog
	}

	debugLog := _config.DataDir + "/flightsurety_debug.log"
	if _, err := os.OpenFile(debugLog, os.O_CREATE|os.O_WRONLY, 0666); err != nil {
		logger.Info("Failed to open flightsurety_debug.log file, using default stderr")
	} else {
		pathMap[logrus.DebugLevel] = debugLog
	}

	logger.Logger.Hooks.Add(lfshook.NewHook(
		pathMap,
		&logrus.TextFormatter{},
	))
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

//AddRunFlags adds flags to the Run command
func AddRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("datadir", _config.DataDir, "Top-level directory for configuration and data")
	cmd.Flags().String("log", _config.LogLevel, "debug, info, warn, error, fatal, panic")

	// Service
	cmd.Flags().StringP("service-listen", "s", _config.ServiceAddr, "Listen IP:Port for HTTP service")

	// Store
	cmd.Flags().Bool("store", _config.Store, "Use badgerDB instead of in-mem DB")
	cmd.Flags().String("db", _config.DatabaseDir, "Database directory")

	// Consensus
	cmd.Flags().String("first-airline", _config.FirstAirline, "Address of the airline admitted at initialization")
	cmd.Flags().String("first-airline-moniker", _config.FirstAirlineMoniker, "Optional name for the first airline")
	cmd.Flags().Uint64("oracle-fee", _config.OracleFee, "Minimum stake for oracle registration")
	cmd.Flags().Uint64("airline-fee", _config.AirlineFee, "Stake an airline pays to become authorized")
	cmd.Flags().Bool("strict-responses", _config.StrictResponses, "Reject a reporter's second, differing response")
	cmd.Flags().Int("notify-buffer", _config.NotifyBuffer, "Size of the notification buffer")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	// If --datadir was explicitely set, but not --db, this will update the
	// default database dir to be inside the new datadir
	_config.SetDataDir(_config.DataDir)

	logFields := logrus.Fields{
		"DataDir":         _config.DataDir,
		"ServiceAddr":     _config.ServiceAddr,
		"LogLevel":        _config.LogLevel,
		"Store":           _config.Store,
		"FirstAirline":    _config.FirstAirline,
		"OracleFee":       _config.OracleFee,
		"AirlineFee":      _config.AirlineFee,
		"StrictResponses": _config.StrictResponses,
	}

	if _config.Store {
		logFields["DatabaseDir"] = _config.DatabaseDir
	}

	_config.Logger().WithFields(logFields).Debug("RUN")

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper. Include flags from this command and all
	// other persistent flags from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// first unmarshal to read from CLI flags
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/flightsurety.toml (.json, .yaml also
	// work)
	viper.SetConfigName("flightsurety")
	viper.AddConfigPath(_config.DataDir)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		_config.Logger().Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		_config.Logger().Debugf("No config file found in: %s", _config.DataDir)
	} else {
		return err
	}

	// second unmarshal to read from config file
	return viper.Unmarshal(_config)
}
