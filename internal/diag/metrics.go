package diag

import (
	"github.com/prometheus/client_golang/prometheus"
)

// 指标注册在私有 Registry 上，由 WriteTextfile 导出为 node-exporter textfile。
// - rusmarc_op_total{comp,stage,result}
// - rusmarc_error_total{comp,code}
// - rusmarc_op_duration_seconds{comp,stage}
// - rusmarc_records_total{result}
// - rusmarc_fields_total{result}
var (
	registry = prometheus.NewRegistry()

	opTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rusmarc",
			Name:      "op_total",
			Help:      "Total number of stage operations",
		},
		[]string{"comp", "stage", "result"},
	)

	errorTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rusmarc",
			Name:      "error_total",
			Help:      "Total number of errors by classification code",
		},
		[]string{"comp", "code"},
	)

	opDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rusmarc",
			Name:      "op_duration_seconds",
			Help:      "Stage duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"comp", "stage"},
	)

	recordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rusmarc",
			Name:      "records_total",
			Help:      "Records decoded (result=ok|partial)",
		},
		[]string{"result"},
	)

	fieldsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rusmarc",
			Name:      "fields_total",
			Help:      "Fields seen (result=typed|skipped|malformed)",
		},
		[]string{"result"},
	)
)

func init() {
	registry.MustRegister(opTotal, errorTotal, opDuration, recordsTotal, fieldsTotal)
}

// Registry 返回进程级指标注册表。
func Registry() *prometheus.Registry { return registry }

// IncOp 累加操作计数（result=success|error）。
func IncOp(comp, stage, result string) {
	opTotal.WithLabelValues(comp, stage, result).Inc()
}

// IncError 按分类累加错误计数。
func IncError(comp, code string) {
	errorTotal.WithLabelValues(comp, code).Inc()
}

// ObserveDuration 记录阶段耗时（毫秒）。
func ObserveDuration(comp, stage string, durMS int64) {
	opDuration.WithLabelValues(comp, stage).Observe(float64(durMS) / 1000)
}

// ObserveRecord 记录一条已解码记录的字段统计。
// 存在被跳过或分词失败的字段时记为 partial。
func ObserveRecord(fields, skipped, malformed int) {
	result := "ok"
	if skipped > 0 || malformed > 0 {
		result = "partial"
	}
	recordsTotal.WithLabelValues(result).Inc()
	fieldsTotal.WithLabelValues("typed").Add(float64(fields))
	fieldsTotal.WithLabelValues("skipped").Add(float64(skipped))
	fieldsTotal.WithLabelValues("malformed").Add(float64(malformed))
}

// WriteTextfile 将当前指标写入 path（原子替换）。
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, registry)
}
