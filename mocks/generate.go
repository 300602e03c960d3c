package mocks

//go:generate mockgen -destination=./mock_futures.go -package=mocks github.com/rxtech-lab/argo-tradelog/internal/futures API
//go:generate mockgen -destination=./mock_notify.go -package=mocks github.com/rxtech-lab/argo-tradelog/internal/notify Sink,Transport,BotSender
//go:generate mockgen -destination=./mock_instrument.go -package=mocks github.com/rxtech-lab/argo-tradelog/internal/instrument Channel
