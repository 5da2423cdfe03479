package handler

import (
	jsoniter "github.com/json-iterator/go"
)

// json substitui o encoding/json da biblioteca padrão pela implementação
// compatível do json-iterator em todos os handlers.
var json = jsoniter.ConfigCompatibleWithStandardLibrary
