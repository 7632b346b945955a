package main

import (
	"log"
	"os"

	"github.com/sabaq/sabaq/core"
	"github.com/sabaq/sabaq/core/course"
	"github.com/sabaq/sabaq/core/user"
	apisvc "github.com/sabaq/sabaq/services/api"
	emailsvc "github.com/sabaq/sabaq/services/email"
	logsvc "github.com/sabaq/sabaq/services/logger"
	cloudinarysvc "github.com/sabaq/sabaq/services/upload/cloudinary"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	}

	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	client := apisvc.NewClient(core.Conf.API, logger)
	cli := commandLine{
		client:    client,
		uploader:  cloudinarysvc.NewService(core.Conf.Upload, logger),
		courseSvc: course.NewService(client),
		usrSvc:    user.NewService(client, mailSvc),
		logger:    logger,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
