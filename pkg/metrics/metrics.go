package metrics

import (
	"errors"
	"log"
	"net/http"

	"github.com/Skyxo/killer/pkg/game"
	"github.com/Skyxo/killer/pkg/player"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequestCounter exposes the per-type request counters shared by every replica
type RequestCounter interface {
	GetRequestsByType(str string) (int64, error)
}

type SnapshotSource interface {
	Snapshot() *game.Snapshot
}

// Collector reads the game state and the request counters on every scrape
type Collector struct {
	playersDesc    *prometheus.Desc
	gameOverDesc   *prometheus.Desc
	departuresDesc *prometheus.Desc
	requestsDesc   *prometheus.Desc

	session      SnapshotSource
	counter      RequestCounter
	requestTypes []string
	gameID       string
}

func NewCollector(session SnapshotSource, counter RequestCounter, requestTypes []string, gameID string) *Collector {
	return &Collector{
		playersDesc:    prometheus.NewDesc("killer_players", "Number of non-admin players, differentiated by status", []string{"gameID", "status"}, nil),
		gameOverDesc:   prometheus.NewDesc("killer_game_over", "1 once a single player is left", []string{"gameID"}, nil),
		departuresDesc: prometheus.NewDesc("killer_departures", "Number of players who left the game", []string{"gameID"}, nil),
		requestsDesc:   prometheus.NewDesc("killer_requests_by_type", "Number of API requests, differentiated by type", []string{"gameID", "type"}, nil),
		session:        session,
		counter:        counter,
		requestTypes:   requestTypes,
		gameID:         gameID,
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.playersDesc
	ch <- c.gameOverDesc
	ch <- c.departuresDesc
	ch <- c.requestsDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.session.Snapshot()
	counts := snap.Counts()
	for status, n := range map[player.Status]int{
		player.Alive:  counts.Alive,
		player.Dead:   counts.Dead,
		player.GaveUp: counts.GaveUp,
	} {
		ch <- prometheus.MustNewConstMetric(c.playersDesc, prometheus.GaugeValue, float64(n), c.gameID, string(status))
	}
	over := 0.0
	if snap.GameOver {
		over = 1
	}
	ch <- prometheus.MustNewConstMetric(c.gameOverDesc, prometheus.GaugeValue, over, c.gameID)
	ch <- prometheus.MustNewConstMetric(c.departuresDesc, prometheus.CounterValue, float64(snap.Departures), c.gameID)

	if c.counter == nil {
		return
	}
	for _, str := range c.requestTypes {
		num, err := c.counter.GetRequestsByType(str)
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Println(err)
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.requestsDesc, prometheus.CounterValue, float64(num), c.gameID, str)
	}
}

// DepartureObserver counts departures by kind as they are committed
type DepartureObserver struct {
	departures *prometheus.CounterVec
}

func NewDepartureObserver() *DepartureObserver {
	return &DepartureObserver{
		departures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "killer_departures_total",
			Help: "Departures committed by this node, differentiated by kind",
		}, []string{"kind"}),
	}
}

func (o *DepartureObserver) Observe(d *game.Departure, _ *game.Snapshot) {
	o.departures.WithLabelValues(string(d.Kind)).Inc()
}

// Handler registers the collectors on a dedicated registry and serves it
func Handler(collectors ...prometheus.Collector) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())
	for _, c := range collectors {
		reg.MustRegister(c)
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func (o *DepartureObserver) Collector() prometheus.Collector {
	return o.departures
}
