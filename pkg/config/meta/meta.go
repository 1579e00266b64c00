package meta

import (
	"errors"
)

var ErrUnknownObjectKind = errors.New("unknown object kind")

type TypeMeta struct {
	Kind       string `json:"kind,omitempty"`
	APIVersion string `json:"apiVersion,omitempty"`
}

type ObjectMeta struct {
	Name string `json:"name,omitempty"`
}

type Object interface {
	GetAPIVersion() string
	GetKind() string
}

func (t TypeMeta) GetAPIVersion() string {
	return t.APIVersion
}

func (t TypeMeta) GetKind() string {
	return t.Kind
}

func (o ObjectMeta) GetName() string {
	return o.Name
}

type ObjectList []Object
