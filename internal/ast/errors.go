package ast

import "github.com/pkg/errors"

func errVisitorReturnedNonNode(res interface{}) error {
	return errors.Errorf("ast: [INTERNAL] visitor returned %T, expected a Node", res)
}
