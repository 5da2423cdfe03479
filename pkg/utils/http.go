package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MakeRequest faz um GET simples e retorna o corpo da resposta.
// O contexto permite cancelar a chamada junto com a operação que a originou.
func MakeRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Error on Request: %s status: %s", url, resp.Status)
	}

	return io.ReadAll(resp.Body)
}
