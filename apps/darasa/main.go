package main

import (
	"log"
	"os"

	"github.com/pkg/errors"
)

func main() {
	c := newContainer()

	var runErr error
	err := c.Invoke(func(cli *commandLine, closer loggerCloser) {
		defer closer.Close()
		runErr = cli.run(os.Args)
		cli.mailSvc.Wait()
	})
	if err != nil {
		log.Fatal(errors.Wrap(err, "starting cli").Error())
	}
	if runErr != nil {
		if runErr != errHelp {
			log.Printf("\nerror: %s\n", runErr)
		}
		os.Exit(1)
	}
}
