// Package speech modela as capacidades externas de voz: captura de fala
// como produtor cancelável de fragmentos de transcrição e reprodução de
// áudio como chamada fire-and-forget. A captura real acontece no cliente;
// o Relay repassa os fragmentos recebidos para a máquina de sessão.
package speech

import (
	"context"
	"errors"
	"log"
	"sync"
)

// Fragment é um trecho de transcrição. Fragmentos finais são acrescentados
// à resposta pendente; fragmentos parciais são apenas para exibição.
type Fragment struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

// ErrorCause distingue as falhas de captura
type ErrorCause string

const (
	CausePermissionDenied ErrorCause = "permission-denied"
	CauseNoDevice         ErrorCause = "no-device"
	CauseDeviceBusy       ErrorCause = "device-busy"
	CauseNoSpeech         ErrorCause = "no-speech"
	CauseTransport        ErrorCause = "transport-error"
)

// CaptureError é uma falha de captura com mensagem própria para o usuário
type CaptureError struct {
	Cause ErrorCause
}

func (e *CaptureError) Error() string {
	return "falha de captura: " + string(e.Cause)
}

// UserMessage devolve a mensagem exibida ao usuário para cada causa
func (e *CaptureError) UserMessage() string {
	switch e.Cause {
	case CausePermissionDenied:
		return "Permissão de microfone negada. Libere o acesso nas configurações do navegador."
	case CauseNoDevice:
		return "Nenhum microfone encontrado. Conecte um dispositivo de áudio e tente novamente."
	case CauseDeviceBusy:
		return "O microfone já está em uso por outra captura."
	case CauseNoSpeech:
		return "Nenhuma fala detectada. Tente falar mais próximo do microfone."
	default:
		return "Erro de transmissão na captura de voz. Tente novamente."
	}
}

// Recognizer é o contrato da captura de voz consumido pela sessão
type Recognizer interface {
	// Start sonda a disponibilidade do microfone e inicia a captura
	Start(ctx context.Context) error
	// Stop encerra a captura; seguro chamar sem captura ativa
	Stop()
	// Fragments devolve o canal da captura ativa; fechado pelo Stop
	Fragments() <-chan Fragment
}

// Speaker é o contrato de reprodução de fala; sem valor de retorno consumido
type Speaker interface {
	Speak(text, locale string)
}

const relayBuffer = 16

// Relay é um Recognizer alimentado externamente: o cliente executa o
// reconhecimento de fala e repassa os fragmentos via Push.
type Relay struct {
	mu        sync.Mutex
	probe     func() error
	fragments chan Fragment
	active    bool
}

// NewRelay cria um relay. probe é consultado no Start para verificar a
// disponibilidade do dispositivo de captura; nil dispensa a sondagem.
func NewRelay(probe func() error) *Relay {
	return &Relay{probe: probe}
}

// Start implementa Recognizer
func (r *Relay) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active {
		return &CaptureError{Cause: CauseDeviceBusy}
	}

	if r.probe != nil {
		if err := r.probe(); err != nil {
			var captureErr *CaptureError
			if errors.As(err, &captureErr) {
				return captureErr
			}
			return &CaptureError{Cause: CauseNoDevice}
		}
	}

	r.fragments = make(chan Fragment, relayBuffer)
	r.active = true
	return nil
}

// Stop implementa Recognizer; idempotente
func (r *Relay) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return
	}
	r.active = false
	close(r.fragments)
}

// Fragments implementa Recognizer
func (r *Relay) Fragments() <-chan Fragment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fragments
}

// Push entrega um fragmento à captura ativa. Devolve false quando não há
// captura ativa ou o buffer está cheio (fragmento descartado).
func (r *Relay) Push(fragment Fragment) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return false
	}
	select {
	case r.fragments <- fragment:
		return true
	default:
		return false
	}
}

// Active informa se há captura em andamento
func (r *Relay) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// LogSpeaker registra as falas no log; a síntese de voz real acontece no
// cliente
type LogSpeaker struct{}

func (LogSpeaker) Speak(text, locale string) {
	log.Printf("🔊 [%s] %s", locale, text)
}
