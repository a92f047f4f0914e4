package internal

import (
	"alba/config"
	"alba/entity"
	"alba/gateway"
	"alba/services"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	paymentNotify   = "/notify"
	payTypes        = "/pay_types"
	details         = "/details/:tid"
	refund          = "/refund/:tid"
	gateDetails     = "/gate/:gate"
	cancelRecurrent = "/recurrent/cancel/:order_id"
	storedCallback  = "/callback/:tid"

	maxBodySize = 1 << 20
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	gateway    services.Gateway
	database   services.Database
	logger     services.LogHandler
	validate   *validator.Validate
}

// refundBody is the operator's refund request; the gateway client itself passes values through.
type refundBody struct {
	Amount string `json:"amount" validate:"omitempty,numeric"`
	Test   bool   `json:"test"`
	Reason string `json:"reason" validate:"max=255"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf:     conf,
		logger:   NewLogger("server", false, nil),
		validate: validator.New(),
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(paymentNotify, s.paymentNotify)
	router.GET(payTypes, s.payTypes)
	router.GET(details, s.transactionDetails)
	router.POST(refund, s.refund)
	router.GET(gateDetails, s.gateDetails)
	router.POST(cancelRecurrent, s.cancelRecurrent)
	router.GET(storedCallback, s.storedCallback)
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) SetGateway(gateway services.Gateway) {
	s.gateway = gateway
}

func (s *Server) SetDatabase(database services.Database) {
	s.database = database
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}
	if s.gateway == nil {
		return fmt.Errorf("gateway client not set")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

func (s *Server) paymentNotify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestId(r.Context())
	reqId := GetRequestId(ctx)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment notify: get body", reqId), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		s.logger.Warn(fmt.Sprintf("[%s] payment notify: parse body: %v", reqId, err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	post := make(map[string]string, len(values))
	for key := range values {
		post[key] = values.Get(key)
	}

	if !s.gateway.CheckCallbackSign(post) {
		s.logger.Warn(fmt.Sprintf("[%s] payment notify: wrong check for tid %s", reqId, post["tid"]))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	callback := entity.NewCallback(post)
	s.logger.Info(fmt.Sprintf("[%s] notification: tid %s; order %s; command %s; cost %s", reqId, callback.Tid, callback.OrderId, callback.Command, callback.Cost))
	if s.database != nil {
		if err = s.database.SaveCallback(ctx, callback); err != nil {
			s.logger.Error(fmt.Sprintf("[%s] payment notify: save callback", reqId), err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) payTypes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestId(r.Context())
	types, err := s.gateway.PayTypes(ctx)
	if err != nil {
		s.writeError(w, fmt.Sprintf("[%s] pay types", GetRequestId(ctx)), err)
		return
	}
	s.writeJSON(w, http.StatusOK, types)
}

func (s *Server) transactionDetails(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestId(r.Context())
	tid := ps.ByName("tid")
	response, err := s.gateway.TransactionDetails(ctx, tid, "")
	if err != nil {
		s.writeError(w, fmt.Sprintf("[%s] transaction details %s", GetRequestId(ctx), tid), err)
		return
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) refund(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestId(r.Context())
	reqId := GetRequestId(ctx)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] refund: read request body", reqId), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var refundRequest refundBody
	if len(body) > 0 {
		if err = json.Unmarshal(body, &refundRequest); err != nil {
			s.logger.Warn(fmt.Sprintf("[%s] refund: decode request body: %v", reqId, err))
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Code: "bad_request", Message: err.Error()})
			return
		}
	}
	if err = s.validate.Struct(&refundRequest); err != nil {
		s.logger.Warn(fmt.Sprintf("[%s] refund: validate request: %v", reqId, err))
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Code: "bad_request", Message: err.Error()})
		return
	}
	request := entity.RefundRequest{
		Tid:    ps.ByName("tid"),
		Amount: refundRequest.Amount,
		Test:   refundRequest.Test,
		Reason: refundRequest.Reason,
	}

	s.logger.Info(fmt.Sprintf("[%s] processing request: refund %s, amount %q", reqId, request.Tid, request.Amount))
	response, err := s.gateway.Refund(ctx, &request)
	if err != nil {
		s.writeError(w, fmt.Sprintf("[%s] refund %s", reqId, request.Tid), err)
		return
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) gateDetails(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestId(r.Context())
	gate := ps.ByName("gate")
	response, err := s.gateway.GateDetails(ctx, gate)
	if err != nil {
		s.writeError(w, fmt.Sprintf("[%s] gate details %s", GetRequestId(ctx), gate), err)
		return
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) cancelRecurrent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestId(r.Context())
	orderId := ps.ByName("order_id")
	response, err := s.gateway.CancelRecurrentPayment(ctx, orderId)
	if err != nil {
		s.writeError(w, fmt.Sprintf("[%s] cancel recurrent %s", GetRequestId(ctx), orderId), err)
		return
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) storedCallback(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestId(r.Context())
	reqId := GetRequestId(ctx)
	tid := ps.ByName("tid")

	if s.database == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Code: "not_found", Message: "callback storage disabled"})
		return
	}
	callback, err := s.database.GetCallback(ctx, tid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.writeJSON(w, http.StatusNotFound, errorResponse{Code: "not_found", Message: "no callback for tid " + tid})
			return
		}
		s.logger.Error(fmt.Sprintf("[%s] stored callback %s", reqId, tid), err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "internal", Message: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, callback)
}

// writeError maps client errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, text string, err error) {
	s.logger.Error(text, err)

	var gatewayError *gateway.GatewayError
	switch {
	case errors.As(err, &gatewayError):
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Code: gatewayError.Code, Message: gatewayError.Message})
	case errors.Is(err, gateway.ErrMissingArgument), errors.Is(err, gateway.ErrInvalidRequest):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Code: "bad_request", Message: err.Error()})
	case errors.Is(err, gateway.ErrGatewayUnavailable):
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Code: "unavailable", Message: err.Error()})
	default:
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "internal", Message: err.Error()})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("write response", err)
	}
}
