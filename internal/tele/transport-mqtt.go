package tele

import (
	"context"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/juju/errors"
	"github.com/temoto/vender-candy/helpers"
	"github.com/temoto/vender-candy/log2"
)

type transportMqtt struct {
	log      *log2.Log
	m        mqtt.Client
	mopt     *mqtt.ClientOptions
	stopCh   chan struct{}
	stopOnce sync.Once
	timeout  time.Duration

	topicPrefix    string
	topicTelemetry string
}

// paho wants Println/Printf
type mqttLogger struct {
	log    *log2.Log
	level  log2.Level
	prefix string
}

func (self mqttLogger) Println(v ...interface{}) {
	self.log.Logf(self.level, "%s%s", self.prefix, fmt.Sprint(v...))
}
func (self mqttLogger) Printf(format string, v ...interface{}) {
	self.log.Logf(self.level, self.prefix+format, v...)
}

func (self *transportMqtt) Init(ctx context.Context, log *log2.Log, teleConfig Config) error {
	if teleConfig.MqttBroker == "" {
		return errors.NotValidf("tele mqtt_broker empty")
	}
	self.log = log
	self.stopCh = make(chan struct{})
	mqtt.CRITICAL = mqttLogger{log: log, level: log2.LError, prefix: "tele.mqtt critical: "}
	mqtt.ERROR = mqttLogger{log: log, level: log2.LError, prefix: "tele.mqtt error: "}
	mqtt.WARN = mqttLogger{log: log, level: log2.LInfo, prefix: "tele.mqtt warn: "}
	if teleConfig.MqttLogDebug {
		mqtt.DEBUG = mqttLogger{log: log, level: log2.LDebug, prefix: "tele.mqtt: "}
	}

	mqttClientId := fmt.Sprintf("vm%d", teleConfig.VmId)
	credFun := func() (string, string) {
		return mqttClientId, teleConfig.MqttPassword
	}

	self.topicPrefix = mqttClientId // coincidence
	self.topicTelemetry = fmt.Sprintf("%s/w/1t", self.topicPrefix)

	networkTimeout := helpers.IntSecondDefault(teleConfig.NetworkTimeoutSec, defaultNetworkTimeout)
	if networkTimeout < 1*time.Second {
		networkTimeout = 1 * time.Second
	}
	self.timeout = networkTimeout
	connectTimeout := networkTimeout * 3
	keepaliveTimeout := helpers.IntSecondDefault(teleConfig.KeepaliveSec, networkTimeout/2)

	self.mopt = mqtt.NewClientOptions().
		AddBroker(teleConfig.MqttBroker).
		SetAutoReconnect(true).
		SetCleanSession(false).
		SetClientID(mqttClientId).
		SetConnectTimeout(connectTimeout).
		SetCredentialsProvider(credFun).
		SetKeepAlive(keepaliveTimeout).
		SetMaxReconnectInterval(connectTimeout).
		SetOrderMatters(false).
		SetPingTimeout(networkTimeout).
		SetWriteTimeout(networkTimeout)
	self.m = mqtt.NewClient(self.mopt)

	go self.online()
	return nil
}

func (self *transportMqtt) Close() {
	self.stopOnce.Do(func() { close(self.stopCh) })
	self.m.Disconnect(uint(self.mopt.PingTimeout / time.Millisecond))
}

func (self *transportMqtt) SendTelemetry(payload []byte) bool {
	if !self.m.IsConnected() {
		return false
	}
	t := self.m.Publish(self.topicTelemetry, 1, false, payload)
	err := self.tokenWait(t, "publish telemetry")
	return err == nil
}

func (self *transportMqtt) online() {
	backoff := helpers.Backoff{Min: time.Second, Max: self.timeout, K: 2}
	for self.isRunning() {
		if self.m.IsConnected() {
			return
		}
		self.log.Debugf("tele connect before")
		t := self.m.Connect()
		if self.tokenWait(t, "connect") == nil {
			self.log.Debugf("tele connected")
			return
		}
		select {
		case <-time.After(backoff.DelayAfter(false)):
		case <-self.stopCh:
			return
		}
	}
}

func (self *transportMqtt) isRunning() bool {
	select {
	case <-self.stopCh:
		return false
	default:
		return true
	}
}

func (self *transportMqtt) tokenWait(t mqtt.Token, tag string) error {
	if !t.WaitTimeout(self.timeout) {
		err := errors.Errorf("%s timeout", tag)
		self.log.Infof("tele: MQTT %s", err.Error())
		return err
	}
	if err := t.Error(); err != nil {
		err = errors.Annotate(err, tag)
		self.log.Infof("tele: MQTT %s", err.Error())
		return err
	}
	return nil
}
