// Package brandstore persiste o registro de marcas num arquivo JSON local,
// o equivalente do lado servidor da entrada medstock_brands do localStorage
// da UI original: uma lista ordenada de strings, lida na primeira consulta e
// regravada por inteiro a cada inclusão.
package brandstore

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/spf13/afero"
	"github.com/medstock/medstock-pro/internal/domain/repository"
)

// BrandSentinel valor sentinela que a UI usa para "marca personalizada";
// nunca entra na parte ordenada da lista.
const BrandSentinel = "Personalizado"

// defaultBrands lista inicial gravada quando o arquivo ainda não existe.
var defaultBrands = []string{
	"Abbott",
	"Pfizer",
	"Johnson & Johnson",
	"Roche",
	"Novartis",
	"Medtronic",
	"BD (Becton Dickinson)",
	"Baxter",
	"Boston Scientific",
	"GE Healthcare",
}

var _ repository.BrandRegistry = (*FileRegistry)(nil)

// FileRegistry registro de marcas sobre um afero.Fs (SO em produção,
// MemMapFs nos testes). As marcas são metadado local do dispositivo, não
// estado autoritativo de inventário.
type FileRegistry struct {
	fs   afero.Fs
	path string

	mu     sync.Mutex
	brands []string // ordenadas, sem a sentinela
	loaded bool
}

// NewFileRegistry constrói o registro sobre o filesystem e caminho informados.
func NewFileRegistry(fs afero.Fs, path string) *FileRegistry {
	return &FileRegistry{fs: fs, path: path}
}

// List devolve a sentinela seguida das marcas em ordem ascendente.
func (r *FileRegistry) List() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.loadLocked(); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(r.brands)+1)
	out = append(out, BrandSentinel)
	out = append(out, r.brands...)
	return out, nil
}

// Add insere a marca, reordena e regrava a lista completa. Duplicadas e a
// sentinela são no-op.
func (r *FileRegistry) Add(name string) error {
	if name == "" || name == BrandSentinel {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.loadLocked(); err != nil {
		return err
	}
	for _, b := range r.brands {
		if b == name {
			return nil
		}
	}
	r.brands = append(r.brands, name)
	sort.Strings(r.brands)
	return r.persistLocked()
}

// loadLocked carrega o arquivo na primeira chamada; arquivo ausente inicializa
// com a lista padrão e a persiste.
func (r *FileRegistry) loadLocked() error {
	if r.loaded {
		return nil
	}
	data, err := afero.ReadFile(r.fs, r.path)
	if os.IsNotExist(err) {
		r.brands = append([]string(nil), defaultBrands...)
		sort.Strings(r.brands)
		r.loaded = true
		return r.persistLocked()
	}
	if err != nil {
		return fmt.Errorf("ler registro de marcas: %w", err)
	}

	var stored []string
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("decodificar registro de marcas: %w", err)
	}
	// A UI antiga gravava a sentinela junto; filtra e deduplica na carga.
	seen := make(map[string]bool, len(stored))
	r.brands = r.brands[:0]
	for _, b := range stored {
		if b == "" || b == BrandSentinel || seen[b] {
			continue
		}
		seen[b] = true
		r.brands = append(r.brands, b)
	}
	sort.Strings(r.brands)
	r.loaded = true
	return nil
}

func (r *FileRegistry) persistLocked() error {
	data, err := json.MarshalIndent(r.brands, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar registro de marcas: %w", err)
	}
	if err := afero.WriteFile(r.fs, r.path, data, 0o644); err != nil {
		return fmt.Errorf("gravar registro de marcas: %w", err)
	}
	return nil
}
