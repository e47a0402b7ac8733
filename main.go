package main

import (
	"os"

	"github.com/voxelbrain/goptions"
)

func main() {
	conf = defaultConfig()
	goptions.ParseAndFail(&conf)

	setLogger(conf.Debug, conf.Log)
	defer logger.Sync()

	if conf.Version {
		sugar.Infof("current version: %v", VERSION)
		os.Exit(0)
	}

	if err := conf.validate(); err != nil {
		sugar.Fatal(err)
	}

	timer := InitTimer()
	timer.Tic()

	summary, err := run(conf)
	if err != nil {
		sugar.Fatal(err)
	}

	sugar.Infof(
		"Read %d alignments; Written %d alignments; Making %d to unaligned",
		summary.Total, summary.Passed, summary.Unaligned,
	)

	timer.Toc()
	sugar.Info(timer.TicToc())
}
