package main

import (
	"fmt"
)

func (cli *commandLine) login(email, pwd string) error {
	if _, err := cli.seed(); err != nil {
		return err
	}
	if !cli.usrSvc.Login(email, pwd) {
		return errInvalidCredentials
	}

	m, err := cli.usrSvc.GetByEmail(email)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, m.Account().ViewDashboard())
	return nil
}
