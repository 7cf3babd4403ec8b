package main

import (
	"fmt"

	"github.com/trezcool/darasa/core/user"
)

func (cli *commandLine) recoverPassword(email string) error {
	if _, err := cli.seed(); err != nil {
		return err
	}
	if !cli.usrSvc.RecoverPassword(email) {
		return user.ErrNotFound
	}
	cli.mailSvc.Wait()
	fmt.Fprintf(cli.out, "A password reset link was sent to %s\n", email)
	return nil
}
